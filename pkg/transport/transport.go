// Package transport moves raw packet buffers between the codec and the
// radio. One inbound buffer is one device packet; framing is the bridge's
// concern, not ours.
package transport

import "errors"

// ErrClosed is returned by Send after the transport has been closed.
var ErrClosed = errors.New("transport closed")

// Transport is an opaque byte-buffer channel to the radio. Packets()
// delivers one buffer per device packet and is closed when the link drops.
type Transport interface {
	Send(data []byte) error
	Packets() <-chan []byte
	Close() error
}
