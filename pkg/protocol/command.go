package protocol

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned by command builders for arguments outside
// their valid range. It signals a programmer error, not a device condition.
var ErrInvalidArgument = errors.New("invalid argument")

// BuildCommand builds the standard 5-byte command packet for the given
// command type and data byte. Every (type, data) pair is valid; the trailing
// byte is the mod-256 sum of the four preceding bytes.
func BuildCommand(commandType, commandData byte) []byte {
	packet := []byte{StartByte, StandardLength, commandType, commandData, 0}
	packet[4] = CalculateChecksum(packet[:4])
	return packet
}

// BuildButtonCommand builds a button-press command for the given button.
func BuildButtonCommand(button ButtonType) ([]byte, error) {
	code, ok := buttonCodes[button]
	if !ok {
		return nil, fmt.Errorf("%w: no code for button %d", ErrInvalidArgument, int(button))
	}
	return BuildCommand(MessageTypeButtonPress, code), nil
}

// ButtonForDigit returns the short-press button for a decimal digit 0-9.
func ButtonForDigit(digit int) (ButtonType, error) {
	if digit < 0 || digit > 9 {
		return 0, fmt.Errorf("%w: digit %d out of range 0-9", ErrInvalidArgument, digit)
	}
	return digitButtons[digit], nil
}

// BuildChannelCommand builds a channel-select command. The channel number
// must fit the single data byte.
func BuildChannelCommand(channel int) ([]byte, error) {
	if channel < 0 || channel > 0xFF {
		return nil, fmt.Errorf("%w: channel %d out of range 0-255", ErrInvalidArgument, channel)
	}
	return BuildCommand(MessageTypeChannelCommand, byte(channel)), nil
}

// BuildHandshakeCommand returns the fixed 4-byte handshake frame. Unlike the
// standard command shape it carries no checksum; the trailing start byte acts
// as a frame terminator.
func BuildHandshakeCommand() []byte {
	return []byte{StartByte, 0x01, 0xFF, StartByte}
}

// IsHandshakeEcho reports whether data is the device's echo of the
// handshake frame.
func IsHandshakeEcho(data []byte) bool {
	return bytes.Equal(data, []byte{StartByte, 0x01, 0xFF, StartByte})
}

// BuildSyncRequestCommand builds a request for the current radio state.
func BuildSyncRequestCommand() []byte {
	return BuildCommand(MessageTypeSyncRequest, 0x00)
}

// BuildStatusRequestCommand builds a request for a status update.
func BuildStatusRequestCommand() []byte {
	return BuildCommand(MessageTypeStatusRequest, 0x00)
}

// BuildAckSuccessCommand builds a positive acknowledgment.
func BuildAckSuccessCommand() []byte {
	return BuildCommand(MessageTypeAck, AckDataSuccess)
}

// BuildAckFailureCommand builds a negative acknowledgment.
func BuildAckFailureCommand() []byte {
	return BuildCommand(MessageTypeAck, AckDataFailure)
}

// CalculateChecksum returns the mod-256 sum of all bytes.
func CalculateChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// VerifyChecksum reports whether the packet's trailing byte equals the
// mod-256 sum of the bytes before it. Packets shorter than the standard
// command size never verify.
func VerifyChecksum(packet []byte) bool {
	if len(packet) < CommandPacketSize {
		return false
	}
	return CalculateChecksum(packet[:len(packet)-1]) == packet[len(packet)-1]
}
