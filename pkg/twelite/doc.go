// Package twelite decodes and validates TWE-Lite "status notify" frames.
//
// A mesh coordinator emits one frame per text line on its serial port: a
// ':' sentinel followed by 48 uppercase hexadecimal digits encoding a
// fixed 24-byte layout. This package turns such a line into an immutable
// [StatusFrame], exposes its fields through fixed-offset accessors, and
// checks the structural invariants (checksum, protocol version, command
// code, relay bound).
//
// # Usage
//
// Decode a line and validate it before touching any field semantics:
//
//	frame, err := twelite.DecodeString(line)
//	if err != nil {
//	    return err
//	}
//	if err := frame.Validate(); err != nil {
//	    return err
//	}
//	mv := frame.PowerVoltageMillis()
//
// Decoding never produces a partial frame; a StatusFrame always holds
// exactly 24 bytes and no accessor can fail. Frames are immutable after
// Decode and safe to share across goroutines.
//
// # Errors
//
// Decode failures are [InvalidLengthError] or [InvalidCharacterError].
// Validate failures are [InvalidChecksumError], [InvalidProtocolVersionError],
// [InvalidCommandError], or [InvalidRelayCountError]. All carry the
// offending value and can be inspected with errors.As.
package twelite
