package metrics

import (
	"sync"
	"testing"
)

func TestCollector_PacketCounters(t *testing.T) {
	c := NewCollector()

	c.PacketReceived(11)
	c.PacketReceived(9)
	c.PacketSent(5)

	if got := c.GetPacketsReceived(); got != 2 {
		t.Errorf("expected 2 packets received, got %d", got)
	}
	if got := c.GetBytesReceived(); got != 20 {
		t.Errorf("expected 20 bytes received, got %d", got)
	}
	if got := c.GetPacketsSent(); got != 1 {
		t.Errorf("expected 1 packet sent, got %d", got)
	}
	if got := c.GetBytesSent(); got != 5 {
		t.Errorf("expected 5 bytes sent, got %d", got)
	}
}

func TestCollector_DecodeCounters(t *testing.T) {
	c := NewCollector()

	c.RadioStateDecoded("FM")
	c.RadioStateDecoded("AIR")
	c.StatusDecoded()
	c.UnknownPacket()
	c.DecodeFailure()
	c.ChecksumFailure()

	if got := c.GetRadioStatesDecoded(); got != 2 {
		t.Errorf("expected 2 radio states decoded, got %d", got)
	}
	if got := c.GetLastBand(); got != "AIR" {
		t.Errorf("expected last band AIR, got %q", got)
	}
	if got := c.GetStatusDecoded(); got != 1 {
		t.Errorf("expected 1 status decoded, got %d", got)
	}
	if got := c.GetUnknownPackets(); got != 1 {
		t.Errorf("expected 1 unknown packet, got %d", got)
	}
	if got := c.GetDecodeFailures(); got != 1 {
		t.Errorf("expected 1 decode failure, got %d", got)
	}
	if got := c.GetChecksumFailures(); got != 1 {
		t.Errorf("expected 1 checksum failure, got %d", got)
	}
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.PacketReceived(11)
	c.RadioStateDecoded("FM")

	c.Reset()

	if c.GetPacketsReceived() != 0 || c.GetRadioStatesDecoded() != 0 || c.GetLastBand() != "" {
		t.Error("expected all counters cleared after Reset")
	}
}

func TestCollector_ConcurrentAccess(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.PacketReceived(11)
				c.RadioStateDecoded("FM")
				_ = c.GetPacketsReceived()
			}
		}()
	}
	wg.Wait()

	if got := c.GetPacketsReceived(); got != 1000 {
		t.Errorf("expected 1000 packets received, got %d", got)
	}
	if got := c.GetRadioStatesDecoded(); got != 1000 {
		t.Errorf("expected 1000 radio states decoded, got %d", got)
	}
}
