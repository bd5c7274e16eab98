// Package radio drives a session with the handheld: handshake, outbound
// commands, and fan-out of decoded inbound packets. The codec in
// pkg/protocol stays stateless; whatever little state a session needs (the
// last decoded snapshot) lives here.
package radio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/radioforge/hrd-link/pkg/logger"
	"github.com/radioforge/hrd-link/pkg/metrics"
	"github.com/radioforge/hrd-link/pkg/protocol"
	"github.com/radioforge/hrd-link/pkg/transport"
)

// Config holds session behavior settings
type Config struct {
	SyncOnConnect    bool          // request a state sync right after the handshake
	StatusInterval   time.Duration // 0 disables periodic status polling
	HandshakeTimeout time.Duration // how long to wait for the handshake echo, 0 skips the wait
}

// StateHandler receives each decoded radio-state snapshot
type StateHandler func(protocol.RadioState)

// StatusHandler receives each decoded status update
type StatusHandler func(protocol.StatusMessage)

// UnknownHandler receives buffers no decoder recognized, unchanged
type UnknownHandler func([]byte)

// Controller owns one transport session with the radio
type Controller struct {
	config    Config
	tr        transport.Transport
	log       *logger.Logger
	collector *metrics.Collector

	handlerMu       sync.RWMutex
	stateHandlers   []StateHandler
	statusHandlers  []StatusHandler
	unknownHandlers []UnknownHandler

	stateMu   sync.RWMutex
	lastState *protocol.RadioState
}

// NewController creates a controller over an already-connected transport.
func NewController(cfg Config, tr transport.Transport, collector *metrics.Collector, log *logger.Logger) *Controller {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Controller{
		config:    cfg,
		tr:        tr,
		log:       log.WithComponent("radio"),
		collector: collector,
	}
}

// OnState registers a handler for decoded radio-state snapshots.
func (c *Controller) OnState(fn StateHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.stateHandlers = append(c.stateHandlers, fn)
}

// OnStatus registers a handler for decoded status updates.
func (c *Controller) OnStatus(fn StatusHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.statusHandlers = append(c.statusHandlers, fn)
}

// OnUnknown registers a handler for unrecognized buffers.
func (c *Controller) OnUnknown(fn UnknownHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.unknownHandlers = append(c.unknownHandlers, fn)
}

// LastState returns the most recent decoded snapshot, if any.
func (c *Controller) LastState() (protocol.RadioState, bool) {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	if c.lastState == nil {
		return protocol.RadioState{}, false
	}
	return *c.lastState, true
}

// Start performs the handshake and runs the receive loop until the context
// is canceled or the transport closes.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.send(protocol.BuildHandshakeCommand()); err != nil {
		return err
	}
	c.log.Info("Handshake sent")

	if c.config.HandshakeTimeout > 0 {
		if err := c.awaitHandshakeEcho(ctx); err != nil {
			if errors.Is(err, transport.ErrClosed) {
				return nil
			}
			return err
		}
	}

	if c.config.SyncOnConnect {
		if err := c.RequestSync(); err != nil {
			return err
		}
	}

	if c.config.StatusInterval > 0 {
		go c.pollStatus(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case packet, ok := <-c.tr.Packets():
			if !ok {
				c.log.Info("Transport closed")
				return nil
			}
			c.handlePacket(packet)
		}
	}
}

// awaitHandshakeEcho waits for the first inbound packet after the handshake.
// The session continues either way; some bridge firmware swallows the echo,
// so a timeout is logged rather than fatal.
func (c *Controller) awaitHandshakeEcho(ctx context.Context) error {
	timer := time.NewTimer(c.config.HandshakeTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case packet, ok := <-c.tr.Packets():
		if !ok {
			c.log.Info("Transport closed")
			return transport.ErrClosed
		}
		c.handlePacket(packet)
		return nil
	case <-timer.C:
		c.log.Warn("No handshake echo before timeout",
			logger.String("timeout", c.config.HandshakeTimeout.String()))
		return nil
	}
}

// PressButton sends a button-press command.
func (c *Controller) PressButton(button protocol.ButtonType) error {
	packet, err := protocol.BuildButtonCommand(button)
	if err != nil {
		return err
	}
	c.log.Debug("Pressing button", logger.String("button", button.String()))
	return c.send(packet)
}

// EnterDigit presses the short-press button for a decimal digit.
func (c *Controller) EnterDigit(digit int) error {
	button, err := protocol.ButtonForDigit(digit)
	if err != nil {
		return err
	}
	return c.PressButton(button)
}

// SelectChannel sends a channel-select command.
func (c *Controller) SelectChannel(channel int) error {
	packet, err := protocol.BuildChannelCommand(channel)
	if err != nil {
		return err
	}
	c.log.Debug("Selecting channel", logger.Int("channel", channel))
	return c.send(packet)
}

// RequestSync asks the radio for a full state snapshot.
func (c *Controller) RequestSync() error {
	return c.send(protocol.BuildSyncRequestCommand())
}

// RequestStatus asks the radio for a status update.
func (c *Controller) RequestStatus() error {
	return c.send(protocol.BuildStatusRequestCommand())
}

// AckSuccess acknowledges the radio's last message positively.
func (c *Controller) AckSuccess() error {
	return c.send(protocol.BuildAckSuccessCommand())
}

// AckFailure acknowledges the radio's last message negatively.
func (c *Controller) AckFailure() error {
	return c.send(protocol.BuildAckFailureCommand())
}

func (c *Controller) send(packet []byte) error {
	if err := c.tr.Send(packet); err != nil {
		return err
	}
	c.collector.PacketSent(len(packet))
	return nil
}

func (c *Controller) pollStatus(ctx context.Context) {
	ticker := time.NewTicker(c.config.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.RequestStatus(); err != nil {
				c.log.Warn("Status poll failed", logger.Error(err))
				return
			}
		}
	}
}

func (c *Controller) handlePacket(packet []byte) {
	c.collector.PacketReceived(len(packet))

	class := protocol.Classify(packet)
	switch class {
	case protocol.PacketRadioState:
		c.noteChecksum(packet)
		state, ok := protocol.DecodeRadioState(packet)
		if !ok {
			c.collector.DecodeFailure()
			c.log.Warn("Radio-state packet failed to decode", logger.Hex("data", packet))
			return
		}
		c.collector.RadioStateDecoded(state.BandName)
		c.setLastState(state)
		c.log.Debug("Radio state decoded",
			logger.String("band", state.BandName),
			logger.Float64("frequency", state.FrequencyValue),
			logger.Int("signal", state.SignalStrength))
		for _, fn := range c.currentStateHandlers() {
			fn(state)
		}

	case protocol.PacketStatus:
		c.noteChecksum(packet)
		msg, ok := protocol.DecodeStatusMessage(packet)
		if !ok {
			c.collector.DecodeFailure()
			c.log.Warn("Status packet failed to decode", logger.Hex("data", packet))
			return
		}
		c.collector.StatusDecoded()
		c.log.Debug("Status decoded",
			logger.String("label", msg.Label),
			logger.String("value", msg.Value))
		for _, fn := range c.currentStatusHandlers() {
			fn(msg)
		}

	case protocol.PacketFrequencyInput:
		// Recognized signature, layout not characterized; pass through
		c.log.Debug("Frequency-input packet (not decoded)", logger.Hex("data", packet))

	default:
		if protocol.IsHandshakeEcho(packet) {
			c.log.Debug("Handshake echo received")
			return
		}
		c.collector.UnknownPacket()
		c.log.Debug("Unrecognized packet", logger.Hex("data", packet))
		for _, fn := range c.currentUnknownHandlers() {
			fn(packet)
		}
	}
}

// noteChecksum records checksum mismatches without gating the decode; the
// device protocol is decoded permissively and the counter is diagnostic.
func (c *Controller) noteChecksum(packet []byte) {
	if !protocol.VerifyChecksum(packet) {
		c.collector.ChecksumFailure()
	}
}

func (c *Controller) setLastState(state protocol.RadioState) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.lastState = &state
}

func (c *Controller) currentStateHandlers() []StateHandler {
	c.handlerMu.RLock()
	defer c.handlerMu.RUnlock()
	return c.stateHandlers
}

func (c *Controller) currentStatusHandlers() []StatusHandler {
	c.handlerMu.RLock()
	defer c.handlerMu.RUnlock()
	return c.statusHandlers
}

func (c *Controller) currentUnknownHandlers() []UnknownHandler {
	c.handlerMu.RLock()
	defer c.handlerMu.RUnlock()
	return c.unknownHandlers
}
