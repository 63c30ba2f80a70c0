package sender

import (
	"context"

	"github.com/ogenki/tweship/pkg/twelite"
)

// Sender delivers one validated status frame to a telemetry backend.
//
// Implementations must be safe for concurrent use: the ingestion loop
// dispatches every accepted frame on its own goroutine and an unbounded
// number of deliveries may be in flight.
type Sender interface {
	// Send attempts delivery of a single frame.
	// Returns nil on success, error on failure. No retry is attempted;
	// a frame whose delivery fails is permanently lost.
	Send(ctx context.Context, frame *twelite.StatusFrame) error
}

// Config holds the immutable backend settings established at startup.
// It must outlive every spawned delivery.
type Config struct {
	// URL is the telemetry endpoint receiving the form POST.
	URL string

	// Username enables HTTP basic auth when non-empty.
	Username string

	// Password is the basic auth password. It may be empty even when
	// Username is set.
	Password string
}
