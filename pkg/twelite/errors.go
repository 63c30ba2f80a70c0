package twelite

import "fmt"

// InvalidLengthError reports an encoded line whose total length is not
// LineLen. The length check runs before any character is inspected.
type InvalidLengthError struct {
	// Length is the actual line length in bytes.
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("twelite: invalid line length %d, want %d", e.Length, LineLen)
}

// InvalidCharacterError reports a byte that is neither the ':' sentinel
// (at position 0) nor an uppercase hexadecimal digit. Decoding stops at
// the first offending byte.
type InvalidCharacterError struct {
	// Char is the offending byte.
	Char byte
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("twelite: invalid character 0x%02X", e.Char)
}

// InvalidChecksumError reports a frame whose bytes do not sum to zero.
type InvalidChecksumError struct {
	// Sum is the nonzero 8-bit wraparound total over all 24 bytes.
	Sum byte
}

func (e *InvalidChecksumError) Error() string {
	return fmt.Sprintf("twelite: checksum must wrap to 0, got 0x%02X", e.Sum)
}

// InvalidProtocolVersionError reports an unexpected protocol version byte.
type InvalidProtocolVersionError struct {
	// Version is the actual byte at the protocol version offset.
	Version byte
}

func (e *InvalidProtocolVersionError) Error() string {
	return fmt.Sprintf("twelite: protocol version must be 0x%02X, got 0x%02X", ProtocolVersion, e.Version)
}

// InvalidCommandError reports a frame type other than status notify.
type InvalidCommandError struct {
	// Command is the actual command byte.
	Command byte
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("twelite: command must be 0x%02X (status notify), got 0x%02X", CommandStatusNotify, e.Command)
}

// InvalidRelayCountError reports a relay count above the protocol bound.
type InvalidRelayCountError struct {
	// Count is the actual relay count byte.
	Count byte
}

func (e *InvalidRelayCountError) Error() string {
	return fmt.Sprintf("twelite: relay count must be at most %d, got %d", MaxRelayCount, e.Count)
}
