package protocol

import "encoding/hex"

// PacketClass identifies which decoder applies to an inbound buffer.
type PacketClass int

const (
	PacketUnknown PacketClass = iota
	PacketStatus
	PacketRadioState
	PacketFrequencyInput
)

// String returns the class name for logging.
func (c PacketClass) String() string {
	switch c {
	case PacketStatus:
		return "status"
	case PacketRadioState:
		return "radio-state"
	case PacketFrequencyInput:
		return "frequency-input"
	default:
		return "unknown"
	}
}

// Classify inspects the leading bytes of an inbound buffer and reports which
// decoder applies. Radio-state and frequency-input packets are matched on
// their full 3-byte signature; status packets on the start byte plus the
// 0x1C marker at byte 2. Unrecognized buffers classify as PacketUnknown and
// pass through to the caller untouched.
func Classify(data []byte) PacketClass {
	if len(data) < 3 || data[0] != StartByte {
		return PacketUnknown
	}
	switch hex.EncodeToString(data[:3]) {
	case SignatureRadioState:
		return PacketRadioState
	case SignatureFrequencyInput:
		return PacketFrequencyInput
	}
	if data[2] == StatusMarker {
		return PacketStatus
	}
	return PacketUnknown
}
