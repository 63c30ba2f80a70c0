// Package serial adapts a serial device to the bridge.LineSource port.
//
// The mesh coordinator talks 8 data bits, no parity, one stop bit, no
// flow control, one frame per CRLF-terminated line. Reads are bounded by
// a timeout so a quiet line never blocks shutdown.
package serial

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tarm "github.com/tarm/serial"

	"github.com/ogenki/tweship/internal/bridge"
)

const readChunk = 256

// Config holds the transport settings for the coordinator port.
type Config struct {
	// Port is the device path, e.g. /dev/ttyUSB0.
	Port string

	// Baud is the line rate. Coordinators default to 115200.
	Baud int

	// ReadTimeout bounds a single blocking read so the reader can notice
	// context cancellation while the line is quiet.
	ReadTimeout time.Duration
}

// Port reads frame lines from a serial device. It implements
// bridge.LineSource.
type Port struct {
	rc      io.ReadCloser
	pending []byte
}

// Open opens the device described by cfg. The tarm driver defaults cover
// the required framing: 8 data bits, no parity, one stop bit.
func Open(cfg Config) (*Port, error) {
	p, err := tarm.OpenPort(&tarm.Config{
		Name:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
	}
	return NewPort(p), nil
}

// NewPort wraps an already-open byte stream. The stream must report a
// timed-out read as io.EOF, the way a bounded serial read does.
func NewPort(rc io.ReadCloser) *Port {
	return &Port{rc: rc}
}

// ReadLine returns the next line without its terminator. A trailing
// carriage return is stripped.
//
// A quiet interval (the bounded read returned no newline) surfaces as
// bridge.ErrReadTimeout; any partial line stays buffered for the next
// call, so frames split across read timeouts are reassembled.
func (p *Port) ReadLine(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if i := bytes.IndexByte(p.pending, '\n'); i >= 0 {
			line := trimLine(p.pending[:i])
			p.pending = append([]byte(nil), p.pending[i+1:]...)
			return line, nil
		}

		var buf [readChunk]byte
		n, err := p.rc.Read(buf[:])
		if n > 0 {
			p.pending = append(p.pending, buf[:n]...)
			continue
		}
		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF):
			return "", bridge.ErrReadTimeout
		default:
			return "", fmt.Errorf("read serial port: %w", err)
		}
	}
}

// Close releases the underlying device.
func (p *Port) Close() error {
	return p.rc.Close()
}

// trimLine drops a trailing carriage return; coordinator lines end CRLF.
func trimLine(b []byte) string {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return string(b)
}
