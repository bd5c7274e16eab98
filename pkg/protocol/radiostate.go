package protocol

import (
	"encoding/hex"
	"fmt"
)

// RadioState is a decoded band/frequency/signal snapshot. It represents one
// packet, not a running state machine; aggregating snapshots over time is
// the caller's concern.
type RadioState struct {
	RawHex         string  // full packet rendered as lowercase hex
	FrequencyHex   string  // the five reassembled frequency digits
	FrequencyValue float64 // displayed frequency after band scaling
	UnitIsMHz      bool    // false when the device reports kHz (MW)
	BandCode       byte
	BandName       string
	SignalStrength int // 0-6
	SignalLabel    string
	SignalBars     int // 0-15, auxiliary bar count
}

// DecodeRadioState decodes the band/frequency/signal packet (signature
// ab0901). The frequency-input variant ab090f is recognized by the
// classifier but its layout is not characterized, so it yields no result
// here by contract. Any malformed buffer likewise yields ok=false.
//
// The displayed frequency's digits are not stored in byte order: bytes 4-6
// each hold two 4-bit digits, and the display order is low(6), high(5),
// low(5), high(4), low(4). Byte 7 is reserved in this packet variant.
func DecodeRadioState(data []byte) (RadioState, bool) {
	if len(data) < MinRadioStatePacketSize {
		return RadioState{}, false
	}
	if hex.EncodeToString(data[:3]) != SignatureRadioState {
		return RadioState{}, false
	}

	b4 := data[RadioStateOffsetFreq]
	b5 := data[RadioStateOffsetFreq+1]
	b6 := data[RadioStateOffsetFreq+2]

	digits := [5]byte{
		b6 & 0x0F,
		b5 >> 4,
		b5 & 0x0F,
		b4 >> 4,
		b4 & 0x0F,
	}

	var raw uint32
	freqHex := make([]byte, 0, len(digits))
	for _, d := range digits {
		raw = raw<<4 | uint32(d)
		freqHex = append(freqHex, hexDigit(d))
	}

	bandCode := data[RadioStateOffsetBand]
	signal := data[RadioStateOffsetSignal]
	strength := int(signal >> 4)

	return RadioState{
		RawHex:         hex.EncodeToString(data),
		FrequencyHex:   string(freqHex),
		FrequencyValue: float64(raw) / pow10(bandDecimalPlaces(bandCode)),
		UnitIsMHz:      data[RadioStateOffsetUnit] != 0x01,
		BandCode:       bandCode,
		BandName:       BandName(bandCode),
		SignalStrength: strength,
		SignalLabel:    SignalQualityLabel(strength),
		SignalBars:     int(signal & 0x0F),
	}, true
}

// BandName returns the display name for a band code. Unmapped codes render
// as "Unknown(<hex>)" so firmware variants with extra bands still decode.
func BandName(bandCode byte) string {
	if name, ok := bandNames[bandCode]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%02X)", bandCode)
}

// SignalQualityLabel returns the quality label for a 0-6 signal strength.
func SignalQualityLabel(strength int) string {
	if strength < 0 || strength >= len(signalQuality) {
		return fmt.Sprintf("Unknown(%d)", strength)
	}
	return signalQuality[strength]
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + n - 10
}

func pow10(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
