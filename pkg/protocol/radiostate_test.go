package protocol

import (
	"math"
	"testing"
)

// radioStatePacket assembles an 11-byte ab0901 packet. The frequency bytes
// are given directly so tests can exercise specific nibble layouts.
func radioStatePacket(band, b4, b5, b6, b7, unit, signal byte) []byte {
	packet := []byte{0xAB, 0x09, 0x01, band, b4, b5, b6, b7, unit, signal, 0x00}
	packet[10] = CalculateChecksum(packet[:10])
	return packet
}

func TestDecodeRadioState_FM(t *testing.T) {
	// Raw magnitude 10230 (0x27F6): digit order is low(6), high(5), low(5),
	// high(4), low(4), so b6 low nibble = 0, b5 = 0x27, b4 = 0xF6.
	data := radioStatePacket(BandFM, 0xF6, 0x27, 0x50, 0x99, 0x00, 0x36)

	state, ok := DecodeRadioState(data)
	if !ok {
		t.Fatalf("expected decode to succeed for % X", data)
	}
	if state.BandName != "FM" {
		t.Errorf("expected band FM, got %q", state.BandName)
	}
	if state.FrequencyHex != "027F6" {
		t.Errorf("expected frequency digits 027F6, got %q", state.FrequencyHex)
	}
	if math.Abs(state.FrequencyValue-102.30) > 1e-9 {
		t.Errorf("expected frequency 102.30, got %v", state.FrequencyValue)
	}
	if !state.UnitIsMHz {
		t.Errorf("unit byte 0x00 should decode as MHz")
	}
	if state.SignalStrength != 3 {
		t.Errorf("expected signal strength 3, got %d", state.SignalStrength)
	}
	if state.SignalLabel != "Fair" {
		t.Errorf("expected signal label Fair, got %q", state.SignalLabel)
	}
	if state.SignalBars != 6 {
		t.Errorf("expected 6 signal bars, got %d", state.SignalBars)
	}
}

func TestDecodeRadioState_MW(t *testing.T) {
	// Raw magnitude 1270 (0x04F6), unit byte 0x01 means kHz
	data := radioStatePacket(BandMW, 0xF6, 0x04, 0x00, 0x00, 0x01, 0x00)

	state, ok := DecodeRadioState(data)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if state.BandName != "MW" {
		t.Errorf("expected band MW, got %q", state.BandName)
	}
	if state.FrequencyValue != 1270 {
		t.Errorf("expected frequency 1270, got %v", state.FrequencyValue)
	}
	if state.UnitIsMHz {
		t.Errorf("unit byte 0x01 should decode as kHz")
	}
}

func TestDecodeRadioState_AIRThreeDecimals(t *testing.T) {
	// Raw magnitude 119345 does not fit five digits; use 0x1D231 (119345)
	data := radioStatePacket(BandAIR, 0x31, 0xD2, 0x01, 0x00, 0x00, 0x00)

	state, ok := DecodeRadioState(data)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if math.Abs(state.FrequencyValue-119.345) > 1e-9 {
		t.Errorf("expected frequency 119.345, got %v", state.FrequencyValue)
	}
}

func TestDecodeRadioState_IgnoresUnusedNibbles(t *testing.T) {
	// High nibble of byte 6 and all of byte 7 are reserved; varying them
	// must not change the decoded frequency.
	a := radioStatePacket(BandFM, 0xF6, 0x27, 0x00, 0x00, 0x00, 0x00)
	b := radioStatePacket(BandFM, 0xF6, 0x27, 0xF0, 0xFF, 0x00, 0x00)

	sa, okA := DecodeRadioState(a)
	sb, okB := DecodeRadioState(b)
	if !okA || !okB {
		t.Fatal("expected both decodes to succeed")
	}
	if sa.FrequencyValue != sb.FrequencyValue || sa.FrequencyHex != sb.FrequencyHex {
		t.Errorf("reserved nibbles leaked into the frequency: %v vs %v",
			sa.FrequencyValue, sb.FrequencyValue)
	}
}

func TestDecodeRadioState_UnknownBand(t *testing.T) {
	data := radioStatePacket(0x42, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)

	state, ok := DecodeRadioState(data)
	if !ok {
		t.Fatal("unknown band codes must still decode")
	}
	if state.BandName != "Unknown(42)" {
		t.Errorf("expected Unknown(42), got %q", state.BandName)
	}
	// Unmapped bands use the default three decimal places
	if state.FrequencyValue != 0 {
		t.Errorf("expected zero frequency, got %v", state.FrequencyValue)
	}
}

func TestDecodeRadioState_FrequencyInputVariantNotDecoded(t *testing.T) {
	data := []byte{0xAB, 0x09, 0x0F, 0x00, 0xF6, 0x27, 0x00, 0x00, 0x00, 0x00, 0x00}
	if _, ok := DecodeRadioState(data); ok {
		t.Errorf("ab090f layout is not characterized and must not decode")
	}
}

func TestDecodeRadioState_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte{0xAB, 0x09, 0x01, 0x00, 0xF6, 0x27, 0x00, 0x00, 0x00, 0x36}},
		{"wrong signature", []byte{0xAB, 0x09, 0x02, 0x00, 0xF6, 0x27, 0x00, 0x00, 0x00, 0x36, 0x00}},
		{"empty", nil},
	}
	for _, tt := range tests {
		if _, ok := DecodeRadioState(tt.data); ok {
			t.Errorf("%s: expected no result", tt.name)
		}
	}
}

func TestSignalQualityLabels(t *testing.T) {
	tests := []struct {
		strength int
		label    string
	}{
		{0, "No Signal"},
		{3, "Fair"},
		{6, "Excellent"},
		{7, "Unknown(7)"},
		{-1, "Unknown(-1)"},
	}
	for _, tt := range tests {
		if got := SignalQualityLabel(tt.strength); got != tt.label {
			t.Errorf("strength %d: expected %q, got %q", tt.strength, tt.label, got)
		}
	}
}
