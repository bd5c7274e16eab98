// Package testhelpers provides a scripted radio for integration tests: it
// answers handshake, sync, and status requests over an in-process transport
// the way the physical device does over the bridge.
package testhelpers

import (
	"sync"

	"github.com/radioforge/hrd-link/pkg/protocol"
	"github.com/radioforge/hrd-link/pkg/transport"
)

// MockDevice simulates the handheld on the device end of a Pipe transport.
type MockDevice struct {
	pipe *transport.Pipe

	mu        sync.Mutex
	received  [][]byte
	state     []byte // canned radio-state reply to sync requests
	statusSet [][]byte

	done chan struct{}
	once sync.Once
}

// NewMockDevice creates a mock device and starts answering on the pipe.
func NewMockDevice(pipe *transport.Pipe) *MockDevice {
	d := &MockDevice{
		pipe:  pipe,
		state: RadioStatePacket(protocol.BandFM, 0xF6, 0x27, 0x00, 0x00, 0x36),
		done:  make(chan struct{}),
	}
	go d.serve()
	return d
}

// SetStateReply replaces the canned radio-state packet sent for sync requests.
func (d *MockDevice) SetStateReply(packet []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = packet
}

// QueueStatus adds a status packet sent in response to the next status request.
func (d *MockDevice) QueueStatus(packet []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statusSet = append(d.statusSet, packet)
}

// Received returns a copy of every packet the controller has sent so far.
func (d *MockDevice) Received() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.received))
	copy(out, d.received)
	return out
}

// Stop stops the serve loop.
func (d *MockDevice) Stop() {
	d.once.Do(func() { close(d.done) })
}

func (d *MockDevice) serve() {
	for {
		select {
		case <-d.done:
			return
		case packet, ok := <-d.pipe.Sent():
			if !ok {
				return
			}
			d.mu.Lock()
			d.received = append(d.received, packet)
			d.mu.Unlock()
			d.reply(packet)
		}
	}
}

func (d *MockDevice) reply(packet []byte) {
	// Handshake echo
	if len(packet) == protocol.HandshakePacketSize {
		d.pipe.Inject(packet)
		return
	}
	if len(packet) != protocol.CommandPacketSize {
		return
	}

	switch packet[2] {
	case protocol.MessageTypeSyncRequest:
		d.mu.Lock()
		state := d.state
		d.mu.Unlock()
		if state != nil {
			d.pipe.Inject(state)
		}
	case protocol.MessageTypeStatusRequest:
		d.mu.Lock()
		var status []byte
		if len(d.statusSet) > 0 {
			status = d.statusSet[0]
			d.statusSet = d.statusSet[1:]
		}
		d.mu.Unlock()
		if status != nil {
			d.pipe.Inject(status)
		}
	}
}

// RadioStatePacket builds a canned ab0901 packet with a valid checksum.
func RadioStatePacket(band, b4, b5, b6, unit, signal byte) []byte {
	packet := []byte{0xAB, 0x09, 0x01, band, b4, b5, b6, 0x00, unit, signal, 0x00}
	packet[10] = protocol.CalculateChecksum(packet[:10])
	return packet
}

// StatusPacket builds a canned status packet with a valid checksum.
func StatusPacket(typeCode byte, value string) []byte {
	packet := []byte{0xAB, byte(3 + len(value)), 0x1C, typeCode, 0x03, byte(len(value))}
	packet = append(packet, []byte(value)...)
	packet = append(packet, protocol.CalculateChecksum(packet))
	return packet
}
