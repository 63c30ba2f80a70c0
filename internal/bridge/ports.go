package bridge

import (
	"context"
	"errors"
)

// LineSource yields one encoded frame line at a time, without the trailing
// line terminator. ReadLine blocks until a full line is available, the
// bounded read times out, the context is canceled, or the source fails.
type LineSource interface {
	ReadLine(ctx context.Context) (string, error)
}

// ErrReadTimeout marks a bounded read that ended without a complete line.
// The ingestion loop treats it as a quiet interval and keeps waiting
// without logging.
var ErrReadTimeout = errors.New("bridge: read timeout")
