package sender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/ogenki/tweship/pkg/log"
	"github.com/ogenki/tweship/pkg/twelite"
)

// HTTPSender implements Sender using one multipart form POST per frame.
type HTTPSender struct {
	client HTTPClient
	cfg    Config
	logger log.Logger
}

// NewHTTPSender creates a new HTTP sender. The client is shared by all
// in-flight deliveries and must be safe for concurrent use.
func NewHTTPSender(client HTTPClient, cfg Config, logger log.Logger) *HTTPSender {
	return &HTTPSender{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Send posts the telemetry fields of one frame to the configured endpoint.
func (s *HTTPSender) Send(ctx context.Context, frame *twelite.StatusFrame) error {
	// Build multipart request body
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := []struct {
		name, value string
	}{
		{"wireless", strconv.Itoa(int(frame.LQI()))},
		{"battery", strconv.Itoa(int(frame.PowerVoltageMillis()))},
		{"doorsensor", strconv.Itoa(int(frame.DIStatus()))},
		{"status", strconv.FormatBool(frame.DIStatusBit(1))},
		{"changed", strconv.FormatBool(frame.DIChangedBit(1))},
	}
	for _, f := range fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("write %s field: %w", f.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart: %w", err)
	}

	// Build request
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if s.cfg.Username != "" {
		req.SetBasicAuth(s.cfg.Username, s.cfg.Password)
	}

	// Send request
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	// Check response
	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	s.logger.Debug("frame delivered",
		log.Int("status", resp.StatusCode),
		log.Uint64("hardware_id", uint64(frame.HardwareID())))
	return nil
}
