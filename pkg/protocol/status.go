package protocol

import "fmt"

// StatusMessage is a decoded single-field status update. It is a snapshot of
// one packet; the decoder keeps no state across calls.
type StatusMessage struct {
	Type  byte   // field type code (byte 3)
	Label string // display label from the type table, or "Type%02X"
	Value string // ASCII payload
	Raw   []byte // the full packet as received
}

// DecodeStatusMessage decodes a labeled status packet of the form
// [0xAB, LEN, 0x1C, TYPE, 0x03, DATALEN, ASCII..., CHECKSUM]. A malformed
// buffer yields ok=false; callers treat that as "not this packet type", not
// as a fatal condition. Unknown type codes decode with a synthesized label.
func DecodeStatusMessage(data []byte) (StatusMessage, bool) {
	if len(data) < MinStatusPacketSize {
		return StatusMessage{}, false
	}
	if data[0] != StartByte || data[2] != StatusMarker {
		return StatusMessage{}, false
	}
	dataLen := int(data[StatusOffsetDataLen])
	if StatusOffsetData+dataLen > len(data) {
		return StatusMessage{}, false
	}

	typeCode := data[StatusOffsetType]
	raw := make([]byte, len(data))
	copy(raw, data)

	return StatusMessage{
		Type:  typeCode,
		Label: statusLabel(typeCode),
		Value: string(data[StatusOffsetData : StatusOffsetData+dataLen]),
		Raw:   raw,
	}, true
}

func statusLabel(typeCode byte) string {
	if label, ok := statusLabels[typeCode]; ok {
		return label
	}
	return fmt.Sprintf("Type%02X", typeCode)
}
