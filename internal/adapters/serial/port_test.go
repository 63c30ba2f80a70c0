package serial

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ogenki/tweship/internal/bridge"
)

// chunkStream replays fixed read results, imitating a serial driver that
// returns io.EOF on a timed-out read. Once drained, every read times out.
type chunkStream struct {
	chunks [][]byte
	closed bool
}

func (s *chunkStream) Read(b []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	c := s.chunks[0]
	n := copy(b, c)
	if n < len(c) {
		s.chunks[0] = c[n:]
	} else {
		s.chunks = s.chunks[1:]
	}
	return n, nil
}

func (s *chunkStream) Close() error {
	s.closed = true
	return nil
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []string
	}{
		{
			name:   "single line with crlf",
			chunks: []string{":AB01\r\n"},
			want:   []string{":AB01"},
		},
		{
			name:   "single line bare lf",
			chunks: []string{":AB01\n"},
			want:   []string{":AB01"},
		},
		{
			name:   "two lines in one chunk",
			chunks: []string{":AB01\r\n:AB02\r\n"},
			want:   []string{":AB01", ":AB02"},
		},
		{
			name:   "line split across timed-out reads",
			chunks: []string{":AB", "01\r", "\n"},
			want:   []string{":AB01"},
		},
		{
			name:   "empty line preserved",
			chunks: []string{"\r\n:AB01\r\n"},
			want:   []string{"", ":AB01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := make([][]byte, len(tt.chunks))
			for i, c := range tt.chunks {
				chunks[i] = []byte(c)
			}
			p := NewPort(&chunkStream{chunks: chunks})

			for _, want := range tt.want {
				got, err := p.ReadLine(context.Background())
				if err != nil {
					t.Fatalf("ReadLine() error: %v", err)
				}
				if got != want {
					t.Errorf("ReadLine() = %q, want %q", got, want)
				}
			}

			// Quiet line after the scripted data.
			if _, err := p.ReadLine(context.Background()); !errors.Is(err, bridge.ErrReadTimeout) {
				t.Errorf("ReadLine() after drain = %v, want ErrReadTimeout", err)
			}
		})
	}
}

func TestReadLine_PartialSurvivesTimeout(t *testing.T) {
	stream := &chunkStream{chunks: [][]byte{[]byte(":AB")}}
	p := NewPort(stream)

	if _, err := p.ReadLine(context.Background()); !errors.Is(err, bridge.ErrReadTimeout) {
		t.Fatalf("ReadLine() = %v, want ErrReadTimeout", err)
	}

	// The rest of the line arrives on a later read.
	stream.chunks = [][]byte{[]byte("01\r\n")}
	got, err := p.ReadLine(context.Background())
	if err != nil {
		t.Fatalf("ReadLine() error: %v", err)
	}
	if got != ":AB01" {
		t.Errorf("ReadLine() = %q, want %q", got, ":AB01")
	}
}

func TestReadLine_HardError(t *testing.T) {
	p := NewPort(&errStream{err: errors.New("device unplugged")})
	if _, err := p.ReadLine(context.Background()); err == nil || errors.Is(err, bridge.ErrReadTimeout) {
		t.Fatalf("ReadLine() = %v, want hard error", err)
	}
}

type errStream struct {
	err error
}

func (s *errStream) Read(b []byte) (int, error) { return 0, s.err }
func (s *errStream) Close() error               { return nil }

func TestReadLine_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPort(&chunkStream{chunks: [][]byte{[]byte(":AB01\r\n")}})
	if _, err := p.ReadLine(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadLine() = %v, want context.Canceled", err)
	}
}

func TestClose(t *testing.T) {
	stream := &chunkStream{}
	p := NewPort(stream)
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !stream.closed {
		t.Error("Close() did not reach the device")
	}
}
