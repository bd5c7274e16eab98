package radio

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/radioforge/hrd-link/pkg/logger"
	"github.com/radioforge/hrd-link/pkg/metrics"
	"github.com/radioforge/hrd-link/pkg/protocol"
	"github.com/radioforge/hrd-link/pkg/transport"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error"})
}

// startController runs the controller against a pipe transport and returns
// both plus a cancel func that stops the session.
func startController(t *testing.T, cfg Config, collector *metrics.Collector) (*Controller, *transport.Pipe, context.CancelFunc) {
	t.Helper()

	pipe := transport.NewPipe()
	ctrl := NewController(cfg, pipe, collector, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Start(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		pipe.Close()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("controller did not stop")
		}
	})

	return ctrl, pipe, cancel
}

func waitSent(t *testing.T, pipe *transport.Pipe) []byte {
	t.Helper()
	select {
	case packet := <-pipe.Sent():
		return packet
	case <-time.After(time.Second):
		t.Fatal("controller sent nothing")
		return nil
	}
}

func TestController_HandshakeThenSyncOnStart(t *testing.T) {
	_, pipe, _ := startController(t, Config{SyncOnConnect: true}, nil)

	handshake := waitSent(t, pipe)
	if !bytes.Equal(handshake, []byte{0xAB, 0x01, 0xFF, 0xAB}) {
		t.Errorf("expected handshake first, got % X", handshake)
	}

	sync := waitSent(t, pipe)
	if sync[2] != protocol.MessageTypeSyncRequest {
		t.Errorf("expected sync request after handshake, got % X", sync)
	}
}

func TestController_WaitsForHandshakeEcho(t *testing.T) {
	collector := metrics.NewCollector()
	_, pipe, _ := startController(t, Config{SyncOnConnect: true, HandshakeTimeout: time.Second}, collector)

	handshake := waitSent(t, pipe)
	pipe.Inject(handshake)

	sync := waitSent(t, pipe)
	if sync[2] != protocol.MessageTypeSyncRequest {
		t.Errorf("expected sync request after echo, got % X", sync)
	}
	if got := collector.GetUnknownPackets(); got != 0 {
		t.Errorf("handshake echo must not count as unknown, got %d", got)
	}
}

func TestController_HandshakeTimeoutStillSyncs(t *testing.T) {
	_, pipe, _ := startController(t, Config{SyncOnConnect: true, HandshakeTimeout: 30 * time.Millisecond}, nil)

	waitSent(t, pipe) // handshake, never echoed

	sync := waitSent(t, pipe)
	if sync[2] != protocol.MessageTypeSyncRequest {
		t.Errorf("expected sync request after echo timeout, got % X", sync)
	}
}

func TestController_DecodesRadioState(t *testing.T) {
	collector := metrics.NewCollector()
	ctrl, pipe, _ := startController(t, Config{}, collector)

	states := make(chan protocol.RadioState, 1)
	ctrl.OnState(func(s protocol.RadioState) { states <- s })

	waitSent(t, pipe) // handshake

	// FM 102.30, signal strength 3, bars 6
	packet := []byte{0xAB, 0x09, 0x01, 0x00, 0xF6, 0x27, 0x50, 0x99, 0x00, 0x36, 0x00}
	pipe.Inject(packet)

	select {
	case state := <-states:
		if state.BandName != "FM" {
			t.Errorf("expected band FM, got %q", state.BandName)
		}
		if math.Abs(state.FrequencyValue-102.30) > 1e-9 {
			t.Errorf("expected 102.30, got %v", state.FrequencyValue)
		}
	case <-time.After(time.Second):
		t.Fatal("state handler never fired")
	}

	last, ok := ctrl.LastState()
	if !ok {
		t.Fatal("expected LastState to be set")
	}
	if last.SignalBars != 6 {
		t.Errorf("expected 6 bars in last state, got %d", last.SignalBars)
	}
	if got := collector.GetRadioStatesDecoded(); got != 1 {
		t.Errorf("expected 1 radio state decoded in metrics, got %d", got)
	}
}

func TestController_DecodesStatusAndUnknown(t *testing.T) {
	collector := metrics.NewCollector()
	ctrl, pipe, _ := startController(t, Config{}, collector)

	statuses := make(chan protocol.StatusMessage, 1)
	unknowns := make(chan []byte, 1)
	ctrl.OnStatus(func(m protocol.StatusMessage) { statuses <- m })
	ctrl.OnUnknown(func(b []byte) { unknowns <- b })

	waitSent(t, pipe) // handshake

	// SNR=42 status packet
	status := []byte{0xAB, 0x05, 0x1C, 0x05, 0x03, 0x02, '4', '2', 0x00}
	status[8] = protocol.CalculateChecksum(status[:8])
	pipe.Inject(status)

	select {
	case msg := <-statuses:
		if msg.Label != "SNR" || msg.Value != "42" {
			t.Errorf("unexpected status %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("status handler never fired")
	}

	garbage := []byte{0x01, 0x02, 0x03}
	pipe.Inject(garbage)

	select {
	case b := <-unknowns:
		if !bytes.Equal(b, garbage) {
			t.Errorf("unknown buffer must pass through unchanged, got % X", b)
		}
	case <-time.After(time.Second):
		t.Fatal("unknown handler never fired")
	}

	if got := collector.GetStatusDecoded(); got != 1 {
		t.Errorf("expected 1 status decoded, got %d", got)
	}
	if got := collector.GetUnknownPackets(); got != 1 {
		t.Errorf("expected 1 unknown packet, got %d", got)
	}
}

func TestController_FrequencyInputIgnored(t *testing.T) {
	collector := metrics.NewCollector()
	ctrl, pipe, _ := startController(t, Config{}, collector)

	states := make(chan protocol.RadioState, 1)
	ctrl.OnState(func(s protocol.RadioState) { states <- s })

	waitSent(t, pipe) // handshake

	pipe.Inject([]byte{0xAB, 0x09, 0x0F, 0x00, 0xF6, 0x27, 0x00, 0x00, 0x00, 0x00, 0x00})

	select {
	case <-states:
		t.Fatal("frequency-input packets must not decode")
	case <-time.After(100 * time.Millisecond):
	}
	if got := collector.GetDecodeFailures(); got != 0 {
		t.Errorf("frequency-input is not a decode failure, got %d", got)
	}
	if got := collector.GetUnknownPackets(); got != 0 {
		t.Errorf("frequency-input is not unknown, got %d", got)
	}
}

func TestController_Commands(t *testing.T) {
	ctrl, pipe, _ := startController(t, Config{}, nil)
	waitSent(t, pipe) // handshake

	if err := ctrl.PressButton(protocol.ButtonVolumeUp); err != nil {
		t.Fatalf("PressButton failed: %v", err)
	}
	packet := waitSent(t, pipe)
	if packet[2] != protocol.MessageTypeButtonPress || packet[3] != 0x12 {
		t.Errorf("unexpected button packet % X", packet)
	}

	if err := ctrl.SelectChannel(7); err != nil {
		t.Fatalf("SelectChannel failed: %v", err)
	}
	packet = waitSent(t, pipe)
	if packet[2] != protocol.MessageTypeChannelCommand || packet[3] != 7 {
		t.Errorf("unexpected channel packet % X", packet)
	}

	if err := ctrl.SelectChannel(300); err == nil {
		t.Error("expected error for out-of-range channel")
	}
	if err := ctrl.EnterDigit(10); err == nil {
		t.Error("expected error for out-of-range digit")
	}

	if err := ctrl.AckSuccess(); err != nil {
		t.Fatalf("AckSuccess failed: %v", err)
	}
	packet = waitSent(t, pipe)
	if packet[2] != protocol.MessageTypeAck || packet[3] != protocol.AckDataSuccess {
		t.Errorf("unexpected ack packet % X", packet)
	}
}

func TestController_StatusPolling(t *testing.T) {
	_, pipe, _ := startController(t, Config{StatusInterval: 20 * time.Millisecond}, nil)
	waitSent(t, pipe) // handshake

	deadline := time.After(time.Second)
	for {
		select {
		case packet := <-pipe.Sent():
			if packet[2] == protocol.MessageTypeStatusRequest {
				return // poll observed
			}
		case <-deadline:
			t.Fatal("no status poll observed")
		}
	}
}
