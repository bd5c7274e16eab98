package transport

import "sync"

// Pipe is an in-process Transport used by tests and the scripted mock
// device. The device end injects inbound packets and observes what the
// controller sent.
type Pipe struct {
	packets chan []byte
	sent    chan []byte

	mu     sync.Mutex
	closed bool
}

// NewPipe creates an in-process transport with buffered ends.
func NewPipe() *Pipe {
	return &Pipe{
		packets: make(chan []byte, 64),
		sent:    make(chan []byte, 64),
	}
}

// Send records an outbound packet on the device end.
func (p *Pipe) Send(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	p.sent <- buf
	return nil
}

// Packets returns the inbound packet channel.
func (p *Pipe) Packets() <-chan []byte {
	return p.packets
}

// Close closes both ends. Safe to call more than once.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.packets)
	return nil
}

// Inject delivers an inbound packet as if the radio had sent it.
func (p *Pipe) Inject(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	p.packets <- buf
}

// Sent returns the channel of packets the controller has transmitted.
func (p *Pipe) Sent() <-chan []byte {
	return p.sent
}
