package protocol

// Protocol framing bytes
const (
	StartByte      = 0xAB // First byte of every frame in either direction
	StandardLength = 0x02 // Length byte of the standard 5-byte command frame
)

// Packet size constants (in bytes)
const (
	CommandPacketSize       = 5  // Standard outbound command: start, len, type, data, checksum
	HandshakePacketSize     = 4  // Handshake frame (no checksum, trailing start byte terminator)
	MinStatusPacketSize     = 7  // Smallest well-formed status response
	MinRadioStatePacketSize = 11 // Band/frequency/signal snapshot
)

// Message type codes (byte 2 of the standard command frame)
const (
	MessageTypeSyncRequest     = 0x01
	MessageTypeSyncResponse    = 0x02
	MessageTypeStatusRequest   = 0x03
	MessageTypeStatusResponse  = 0x04
	MessageTypeGeneralResponse = 0x05
	MessageTypeButtonPress     = 0x0C
	MessageTypeChannelCommand  = 0x0D
)

// Acknowledgment command type and data bytes
const (
	MessageTypeAck = 0x12
	AckDataSuccess = 0x00
	AckDataFailure = 0x01
)

// Status packet markers and field offsets
const (
	StatusMarker        = 0x1C // byte 2 of every status response
	StatusOffsetType    = 3    // 1 byte: field type code
	StatusOffsetDataLen = 5    // 1 byte: ASCII payload length
	StatusOffsetData    = 6    // DATALEN bytes: ASCII payload
)

// Radio-state packet field offsets
const (
	RadioStateOffsetBand   = 3 // 1 byte: band code
	RadioStateOffsetFreq   = 4 // 4 bytes: nibble-packed frequency digits
	RadioStateOffsetUnit   = 8 // 1 byte: 0x01 = kHz, otherwise MHz
	RadioStateOffsetSignal = 9 // 1 byte: high nibble strength, low nibble bars
)

// Hex-rendered 3-byte signatures used by the response classifier
const (
	SignatureRadioState     = "ab0901"
	SignatureFrequencyInput = "ab090f" // recognized but intentionally not decoded
)

// ButtonType identifies a physical key on the radio, including distinct
// long-press variants where the device reports them as separate codes.
type ButtonType int

const (
	ButtonNumber1 ButtonType = iota
	ButtonNumber2
	ButtonNumber3
	ButtonNumber4
	ButtonNumber5
	ButtonNumber6
	ButtonNumber7
	ButtonNumber8
	ButtonNumber9
	ButtonNumber0
	ButtonNumber1Long
	ButtonNumber2Long
	ButtonNumber3Long
	ButtonNumber4Long
	ButtonNumber5Long
	ButtonUpShort
	ButtonDownShort
	ButtonUpLong
	ButtonDownLong
	ButtonVolumeUp
	ButtonVolumeDown
	ButtonPower
	ButtonPowerLong
	ButtonBluetooth
	ButtonSos
	ButtonSosLong
	ButtonAlarmClick
	ButtonAlarmLong
)

// buttonCodes maps each button to the data byte the device expects at
// offset 3 of a button-press command. The table mirrors the device firmware
// exactly; a missing entry would break a physical key.
var buttonCodes = map[ButtonType]byte{
	ButtonNumber1:     0x01,
	ButtonNumber2:     0x02,
	ButtonNumber3:     0x03,
	ButtonNumber4:     0x04,
	ButtonNumber5:     0x05,
	ButtonNumber6:     0x06,
	ButtonNumber7:     0x07,
	ButtonNumber8:     0x08,
	ButtonNumber9:     0x09,
	ButtonNumber0:     0x0A,
	ButtonUpShort:     0x10,
	ButtonDownShort:   0x11,
	ButtonVolumeUp:    0x12,
	ButtonVolumeDown:  0x13,
	ButtonPower:       0x14,
	ButtonBluetooth:   0x1C,
	ButtonSos:         0x2A,
	ButtonSosLong:     0x2B,
	ButtonAlarmClick:  0x31,
	ButtonAlarmLong:   0x32,
	ButtonNumber1Long: 0x35,
	ButtonNumber2Long: 0x36,
	ButtonNumber3Long: 0x37,
	ButtonNumber4Long: 0x38,
	ButtonNumber5Long: 0x39,
	ButtonUpLong:      0x40,
	ButtonDownLong:    0x41,
	ButtonPowerLong:   0x45,
}

// buttonNames gives a stable display name per button for logging.
var buttonNames = map[ButtonType]string{
	ButtonNumber1:     "Number1",
	ButtonNumber2:     "Number2",
	ButtonNumber3:     "Number3",
	ButtonNumber4:     "Number4",
	ButtonNumber5:     "Number5",
	ButtonNumber6:     "Number6",
	ButtonNumber7:     "Number7",
	ButtonNumber8:     "Number8",
	ButtonNumber9:     "Number9",
	ButtonNumber0:     "Number0",
	ButtonNumber1Long: "Number1Long",
	ButtonNumber2Long: "Number2Long",
	ButtonNumber3Long: "Number3Long",
	ButtonNumber4Long: "Number4Long",
	ButtonNumber5Long: "Number5Long",
	ButtonUpShort:     "UpShort",
	ButtonDownShort:   "DownShort",
	ButtonUpLong:      "UpLong",
	ButtonDownLong:    "DownLong",
	ButtonVolumeUp:    "VolumeUp",
	ButtonVolumeDown:  "VolumeDown",
	ButtonPower:       "Power",
	ButtonPowerLong:   "PowerLong",
	ButtonBluetooth:   "Bluetooth",
	ButtonSos:         "Sos",
	ButtonSosLong:     "SosLong",
	ButtonAlarmClick:  "AlarmClick",
	ButtonAlarmLong:   "AlarmLong",
}

// String returns the button's display name.
func (b ButtonType) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return "Unknown"
}

// digitButtons maps decimal digits 0-9 to their short-press buttons.
var digitButtons = [10]ButtonType{
	ButtonNumber0,
	ButtonNumber1,
	ButtonNumber2,
	ButtonNumber3,
	ButtonNumber4,
	ButtonNumber5,
	ButtonNumber6,
	ButtonNumber7,
	ButtonNumber8,
	ButtonNumber9,
}

// statusLabels maps status field type codes to display labels. Unknown codes
// fall back to a synthesized "Type%02X" label rather than failing, so newer
// firmware can add fields without breaking the decoder.
var statusLabels = map[byte]string{
	0x02: "Demodulation",
	0x03: "ModulationMode",
	0x04: "BandWidth",
	0x05: "SNR",
	0x06: "FreqFracH",
	0x07: "FreqFracL",
	0x08: "RSSI",
	0x09: "VolumeLabel",
	0x0A: "VolumeValue",
	0x0B: "Model",
	0x0C: "Status",
	0x0D: "Recording",
}

// Band codes (byte 3 of the radio-state packet)
const (
	BandFM  = 0x00
	BandMW  = 0x01
	BandSW  = 0x02
	BandAIR = 0x03
	BandWB  = 0x06
	BandVHF = 0x07
)

// bandNames maps band codes to display names.
var bandNames = map[byte]string{
	BandFM:  "FM",
	BandMW:  "MW",
	BandSW:  "SW",
	BandAIR: "AIR",
	BandWB:  "WB",
	BandVHF: "VHF",
}

// bandDecimalPlaces gives the decimal scaling applied to the raw frequency
// magnitude per band: FM shows two decimals, MW shows whole kHz, every other
// band shows three.
func bandDecimalPlaces(bandCode byte) int {
	switch bandCode {
	case BandFM:
		return 2
	case BandMW:
		return 0
	default:
		return 3
	}
}

// signalQuality maps the 0-6 signal strength value to a quality label.
var signalQuality = [7]string{
	"No Signal",
	"Very Poor",
	"Poor",
	"Fair",
	"Good",
	"Very Good",
	"Excellent",
}
