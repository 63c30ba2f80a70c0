package sender

import (
	"context"

	"github.com/ogenki/tweship/pkg/twelite"
)

// NullSender implements Sender by accepting every frame without any I/O.
// It backs dry-run mode when no backend URL is configured.
type NullSender struct{}

// NewNullSender creates a new null sender.
func NewNullSender() *NullSender {
	return &NullSender{}
}

// Send always succeeds.
func (NullSender) Send(ctx context.Context, frame *twelite.StatusFrame) error {
	return nil
}
