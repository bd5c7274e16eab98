package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/radioforge/hrd-link/pkg/logger"
)

// maxPacketSize bounds a single read. Device packets are tiny; the bridge
// never coalesces more than one notification per write.
const maxPacketSize = 256

// TCP is a Transport over a serial/BLE network bridge. Each successful read
// is treated as exactly one device packet, mirroring the notification
// semantics of the underlying link.
type TCP struct {
	conn    net.Conn
	log     *logger.Logger
	packets chan []byte

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// DialTCP connects to the bridge at addr and starts the receive loop.
func DialTCP(ctx context.Context, addr string, timeout time.Duration, log *logger.Logger) (*TCP, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to device bridge: %w", err)
	}

	t := &TCP{
		conn:    conn,
		log:     log.WithComponent("transport.tcp"),
		packets: make(chan []byte, 64),
	}

	t.log.Info("Connected to device bridge",
		logger.String("remote", conn.RemoteAddr().String()))

	go t.receiveLoop()

	return t, nil
}

// Send transmits one packet to the device.
func (t *TCP) Send(data []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if _, err := t.conn.Write(data); err != nil {
		return fmt.Errorf("failed to send packet: %w", err)
	}

	t.log.Debug("Sent packet", logger.Hex("data", data))
	return nil
}

// Packets returns the inbound packet channel. It is closed when the
// connection drops or Close is called.
func (t *TCP) Packets() <-chan []byte {
	return t.packets
}

// Close closes the connection. Safe to call more than once.
func (t *TCP) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}

func (t *TCP) receiveLoop() {
	defer close(t.packets)

	buf := make([]byte, maxPacketSize)
	for {
		n, err := t.conn.Read(buf)
		if err != nil {
			t.log.Debug("Receive loop ended", logger.Error(err))
			return
		}
		if n == 0 {
			continue
		}

		packet := make([]byte, n)
		copy(packet, buf[:n])

		select {
		case t.packets <- packet:
		default:
			t.log.Warn("Inbound packet buffer full, dropping packet",
				logger.Hex("data", packet))
		}
	}
}
