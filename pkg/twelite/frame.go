package twelite

import "encoding/binary"

// FrameLen is the decoded frame size in bytes.
const FrameLen = 24

// LineLen is the encoded line length: the ':' sentinel plus two hex
// digits per frame byte.
const LineLen = 1 + FrameLen*2

const (
	// CommandStatusNotify is the only frame type this package accepts.
	CommandStatusNotify = 0x81

	// ProtocolVersion is the protocol version every valid frame carries.
	ProtocolVersion = 0x01

	// MaxRelayCount is the protocol bound on mesh hops.
	MaxRelayCount = 3

	sentinel = ':'
)

// StatusFrame is a decoded status-notify frame.
//
// A StatusFrame exists only as the result of a successful Decode, always
// holds exactly FrameLen bytes, and is never mutated afterwards, so it is
// safe to share with concurrently running delivery work.
type StatusFrame struct {
	buf [FrameLen]byte
}

// Decode parses one encoded frame line with no trailing line terminator.
//
// The line must be exactly LineLen bytes, start with the ':' sentinel,
// and spell each frame byte as two uppercase hexadecimal digits, most
// significant nibble first. Lowercase digits are rejected. Decoding stops
// at the first offending byte and never yields a partial frame.
func Decode(line []byte) (*StatusFrame, error) {
	if len(line) != LineLen {
		return nil, &InvalidLengthError{Length: len(line)}
	}
	if line[0] != sentinel {
		return nil, &InvalidCharacterError{Char: line[0]}
	}

	var f StatusFrame
	digits := line[1:]
	for i := 0; i < FrameLen; i++ {
		hi, err := hexDigit(digits[2*i])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(digits[2*i+1])
		if err != nil {
			return nil, err
		}
		f.buf[i] = hi<<4 | lo
	}
	return &f, nil
}

// DecodeString is Decode for a string line.
func DecodeString(line string) (*StatusFrame, error) {
	return Decode([]byte(line))
}

// hexDigit accepts 0-9 and uppercase A-F only; the wire format never
// carries lowercase digits.
func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, &InvalidCharacterError{Char: c}
}

// SourceDeviceID returns the logical device id of the sending terminal
// (offset 0).
func (f *StatusFrame) SourceDeviceID() byte { return f.buf[0] }

// Command returns the frame type byte (offset 1). A valid status-notify
// frame carries CommandStatusNotify.
func (f *StatusFrame) Command() byte { return f.buf[1] }

// PacketID returns the packet identifier (offset 2).
func (f *StatusFrame) PacketID() byte { return f.buf[2] }

// ProtocolVersion returns the protocol version byte (offset 3).
func (f *StatusFrame) ProtocolVersion() byte { return f.buf[3] }

// LQI returns the link quality indicator, 0-255 (offset 4).
func (f *StatusFrame) LQI() byte { return f.buf[4] }

// LQIdBm converts the link quality indicator to an approximate received
// signal strength in dBm.
func (f *StatusFrame) LQIdBm() float64 {
	return float64(7*int(f.LQI())-1970) / 20
}

// HardwareID returns the factory-assigned terminal id (offsets 5-8,
// big-endian).
func (f *StatusFrame) HardwareID() uint32 {
	return binary.BigEndian.Uint32(f.buf[5:9])
}

// DestDeviceID returns the logical device id of the receiving terminal
// (offset 9).
func (f *StatusFrame) DestDeviceID() byte { return f.buf[9] }

// Timestamp returns the sender clock in 1/64 s units (offsets 10-11,
// big-endian). It wraps at 0xFFFF.
func (f *StatusFrame) Timestamp() uint16 {
	return binary.BigEndian.Uint16(f.buf[10:12])
}

// RelayCount returns the number of mesh hops the frame traversed
// (offset 12), at most MaxRelayCount in a valid frame.
func (f *StatusFrame) RelayCount() byte { return f.buf[12] }

// PowerVoltageMillis returns the supply voltage in millivolts
// (offsets 13-14, big-endian).
func (f *StatusFrame) PowerVoltageMillis() uint16 {
	return binary.BigEndian.Uint16(f.buf[13:15])
}

// DIStatus returns the digital-input status bitfield (offset 16).
// Bit 0 is DI1 through bit 3 for DI4.
func (f *StatusFrame) DIStatus() byte { return f.buf[16] }

// DIChanged returns the digital-input changed bitfield (offset 17),
// laid out like DIStatus.
func (f *StatusFrame) DIChanged() byte { return f.buf[17] }

// DIStatusBit reports whether digital input ch (1-4) is active.
func (f *StatusFrame) DIStatusBit(ch int) bool {
	checkChannel(ch)
	return f.DIStatus()&(1<<(ch-1)) != 0
}

// DIChangedBit reports whether digital input ch (1-4) changed since the
// previous notification.
func (f *StatusFrame) DIChangedBit(ch int) bool {
	checkChannel(ch)
	return f.DIChanged()&(1<<(ch-1)) != 0
}

// ADValue returns the raw analog conversion value for channel ch (1-4).
// Channels are stored in reverse order, channel 4 first (offsets 18-21).
func (f *StatusFrame) ADValue(ch int) byte {
	checkChannel(ch)
	return f.buf[22-ch]
}

// ADValues returns the raw analog values for channels 1 through 4.
func (f *StatusFrame) ADValues() [4]byte {
	return [4]byte{f.ADValue(1), f.ADValue(2), f.ADValue(3), f.ADValue(4)}
}

// ADFix returns the analog correction byte (offset 22): two correction
// bits per channel, channel 1 in the low bits.
func (f *StatusFrame) ADFix() byte { return f.buf[22] }

// ADFixBits returns the two correction bits for channel ch (1-4).
func (f *StatusFrame) ADFixBits(ch int) byte {
	checkChannel(ch)
	return (f.ADFix() >> (2 * (ch - 1))) & 0b11
}

// ADVoltageMillis restores the analog input voltage in millivolts for
// channel ch (1-4): (raw*4 + fix) * 4.
func (f *StatusFrame) ADVoltageMillis(ch int) uint16 {
	return (uint16(f.ADValue(ch))*4 + uint16(f.ADFixBits(ch))) * 4
}

// Checksum returns the raw checksum byte (offset 23).
func (f *StatusFrame) Checksum() byte { return f.buf[23] }

// Bytes returns a copy of the decoded 24-byte frame.
func (f *StatusFrame) Bytes() [FrameLen]byte { return f.buf }

func checkChannel(ch int) {
	if ch < 1 || ch > 4 {
		panic("twelite: channel out of range")
	}
}

// ValidateChecksum verifies that the 8-bit wraparound sum over all frame
// bytes, checksum byte included, is zero.
func (f *StatusFrame) ValidateChecksum() error {
	var sum byte
	for _, b := range f.buf {
		sum += b
	}
	if sum != 0 {
		return &InvalidChecksumError{Sum: sum}
	}
	return nil
}

// ValidateProtocolVersion verifies the protocol version byte.
func (f *StatusFrame) ValidateProtocolVersion() error {
	if v := f.ProtocolVersion(); v != ProtocolVersion {
		return &InvalidProtocolVersionError{Version: v}
	}
	return nil
}

// ValidateCommand verifies the frame type is status notify. Other command
// codes are rejected rather than partially interpreted.
func (f *StatusFrame) ValidateCommand() error {
	if c := f.Command(); c != CommandStatusNotify {
		return &InvalidCommandError{Command: c}
	}
	return nil
}

// ValidateRelayCount verifies the relay count is within the protocol bound.
func (f *StatusFrame) ValidateRelayCount() error {
	if n := f.RelayCount(); n > MaxRelayCount {
		return &InvalidRelayCountError{Count: n}
	}
	return nil
}

// Validate runs the structural checks in fixed order (checksum, protocol
// version, command, relay count) and returns the first failure. A frame
// that passes is eligible for delivery; no other field is validated.
func (f *StatusFrame) Validate() error {
	if err := f.ValidateChecksum(); err != nil {
		return err
	}
	if err := f.ValidateProtocolVersion(); err != nil {
		return err
	}
	if err := f.ValidateCommand(); err != nil {
		return err
	}
	return f.ValidateRelayCount()
}
