package metrics

import (
	"sync"
)

// Collector collects HRD-Link packet and decode metrics
type Collector struct {
	mu sync.RWMutex

	// Packet metrics
	packetsReceived uint64
	packetsSent     uint64
	bytesReceived   uint64
	bytesSent       uint64

	// Decode metrics
	radioStatesDecoded uint64
	statusDecoded      uint64
	unknownPackets     uint64
	decodeFailures     uint64
	checksumFailures   uint64

	// Last observed band per name, for the active-band gauge
	lastBand string
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{}
}

// PacketReceived records an inbound packet
func (c *Collector) PacketReceived(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.packetsReceived++
	c.bytesReceived += uint64(size)
}

// PacketSent records an outbound packet
func (c *Collector) PacketSent(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.packetsSent++
	c.bytesSent += uint64(size)
}

// RadioStateDecoded records a successful radio-state decode
func (c *Collector) RadioStateDecoded(bandName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.radioStatesDecoded++
	c.lastBand = bandName
}

// StatusDecoded records a successful status decode
func (c *Collector) StatusDecoded() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.statusDecoded++
}

// UnknownPacket records an inbound buffer no decoder recognized
func (c *Collector) UnknownPacket() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.unknownPackets++
}

// DecodeFailure records a classified packet that failed to decode
func (c *Collector) DecodeFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.decodeFailures++
}

// ChecksumFailure records a packet whose checksum did not verify
func (c *Collector) ChecksumFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checksumFailures++
}

// GetPacketsReceived returns total packets received
func (c *Collector) GetPacketsReceived() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.packetsReceived
}

// GetPacketsSent returns total packets sent
func (c *Collector) GetPacketsSent() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.packetsSent
}

// GetBytesReceived returns total bytes received
func (c *Collector) GetBytesReceived() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bytesReceived
}

// GetBytesSent returns total bytes sent
func (c *Collector) GetBytesSent() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bytesSent
}

// GetRadioStatesDecoded returns total radio-state decodes
func (c *Collector) GetRadioStatesDecoded() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.radioStatesDecoded
}

// GetStatusDecoded returns total status decodes
func (c *Collector) GetStatusDecoded() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.statusDecoded
}

// GetUnknownPackets returns total unrecognized packets
func (c *Collector) GetUnknownPackets() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unknownPackets
}

// GetDecodeFailures returns total decode failures
func (c *Collector) GetDecodeFailures() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.decodeFailures
}

// GetChecksumFailures returns total checksum failures
func (c *Collector) GetChecksumFailures() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.checksumFailures
}

// GetLastBand returns the band of the most recent radio-state decode
func (c *Collector) GetLastBand() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastBand
}

// Reset clears all counters (used by tests)
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.packetsReceived = 0
	c.packetsSent = 0
	c.bytesReceived = 0
	c.bytesSent = 0
	c.radioStatesDecoded = 0
	c.statusDecoded = 0
	c.unknownPackets = 0
	c.decodeFailures = 0
	c.checksumFailures = 0
	c.lastBand = ""
}
