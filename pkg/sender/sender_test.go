package sender

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ogenki/tweship/pkg/log"
	"github.com/ogenki/tweship/pkg/twelite"
)

// testLine decodes to LQI 0x75, 3076 mV, DI status 0x05, DI changed 0x01.
// Checksum recomputed for the DI bytes (0xA7 - 0x05 - 0x01 = 0xA1).
const testLine = ":7881150175810000380026C9000C04220501FFFFFFFFFFA1"

func testFrame(t *testing.T) *twelite.StatusFrame {
	t.Helper()
	f, err := twelite.DecodeString(testLine)
	if err != nil {
		t.Fatalf("decode test frame: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("validate test frame: %v", err)
	}
	return f
}

func TestHTTPSender_Send(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		if r.Method != http.MethodPost {
			t.Errorf("Method = %v, want POST", r.Method)
		}

		user, pass, ok := r.BasicAuth()
		if !ok {
			t.Error("basic auth missing")
		}
		if user != "door" || pass != "secret" {
			t.Errorf("basic auth = %v:%v, want door:secret", user, pass)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart form: %v", err)
		}
		want := map[string]string{
			"wireless":   "117",
			"battery":    "3076",
			"doorsensor": "5",
			"status":     "true",
			"changed":    "true",
		}
		for name, value := range want {
			if got := r.FormValue(name); got != value {
				t.Errorf("field %s = %q, want %q", name, got, value)
			}
		}
		if got := len(r.MultipartForm.Value); got != len(want) {
			t.Errorf("field count = %d, want %d", got, len(want))
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	s := NewHTTPSender(ts.Client(), Config{
		URL:      ts.URL,
		Username: "door",
		Password: "secret",
	}, log.NewNoopLogger())

	if err := s.Send(context.Background(), testFrame(t)); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("POST count = %d, want 1", calls)
	}
}

func TestHTTPSender_Send_NoAuthWithoutUsername(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); ok {
			t.Error("basic auth attached without a configured username")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	s := NewHTTPSender(ts.Client(), Config{URL: ts.URL}, log.NewNoopLogger())
	if err := s.Send(context.Background(), testFrame(t)); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
}

func TestHTTPSender_Send_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	s := NewHTTPSender(ts.Client(), Config{URL: ts.URL}, log.NewNoopLogger())
	err := s.Send(context.Background(), testFrame(t))
	if err == nil {
		t.Fatal("Send() error = nil, want non-2xx failure")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("Send() error = %v, want status 403 mentioned", err)
	}
}

func TestHTTPSender_Send_ConnectionFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listens anymore

	s := NewHTTPSender(http.DefaultClient, Config{URL: ts.URL}, log.NewNoopLogger())
	if err := s.Send(context.Background(), testFrame(t)); err == nil {
		t.Fatal("Send() error = nil, want transport failure")
	}
}

func TestNullSender_Send(t *testing.T) {
	s := NewNullSender()
	if err := s.Send(context.Background(), testFrame(t)); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
}
