// Package bridge drives the per-line ingestion pipeline: read a frame
// line from the serial source, decode it, validate it, print a summary,
// and hand it to the delivery sink without waiting for the outcome.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ogenki/tweship/pkg/log"
	"github.com/ogenki/tweship/pkg/sender"
	"github.com/ogenki/tweship/pkg/twelite"
)

// Bridge connects one serial line source to one delivery sink.
// Both are fixed at construction and never switched afterwards.
type Bridge struct {
	src    LineSource
	sink   sender.Sender
	out    io.Writer
	logger log.Logger
}

// New creates a bridge that reads lines from src, dispatches accepted
// frames to sink, and writes their summaries to out.
func New(src LineSource, sink sender.Sender, out io.Writer, logger log.Logger) *Bridge {
	return &Bridge{
		src:    src,
		sink:   sink,
		out:    out,
		logger: logger,
	}
}

// Run processes lines until the source ends or ctx is canceled.
//
// Decode failures, validate failures, and transient read failures are
// logged and skipped; they never stop the loop. Every accepted frame is
// dispatched on its own goroutine and not awaited, so a slow backend
// never stalls the reader. Deliveries still in flight when Run returns
// are abandoned.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		line, err := b.src.ReadLine(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrReadTimeout):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		default:
			b.logger.Warn("read line", log.Err(err))
			continue
		}

		frame, err := twelite.DecodeString(line)
		if err != nil {
			b.logger.Error("decode frame", log.Err(err), log.String("line", line))
			continue
		}

		if err := frame.Validate(); err != nil {
			b.logger.Error("invalid frame", log.Err(err))
			continue
		}

		fmt.Fprintln(b.out, frame.Summary())

		go b.dispatch(ctx, frame)
	}
}

// dispatch delivers one frame and logs the outcome. A failed delivery is
// dropped here; it must never reach the ingestion loop.
func (b *Bridge) dispatch(ctx context.Context, frame *twelite.StatusFrame) {
	if err := b.sink.Send(ctx, frame); err != nil {
		b.logger.Error("deliver frame",
			log.Err(err),
			log.Uint64("hardware_id", uint64(frame.HardwareID())))
	}
}
