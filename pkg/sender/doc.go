// Package sender delivers validated status frames to a telemetry backend.
//
// Delivery is one multipart form POST per frame with the fields the
// backend expects: wireless (LQI), battery (supply millivolts),
// doorsensor (DI status byte), status and changed (the DI1 boolean pair).
// HTTP basic auth is attached when a username is configured.
//
// # Usage
//
// Create an HTTP sender with a shared client:
//
//	client := &http.Client{Timeout: 15 * time.Second}
//	s := sender.NewHTTPSender(client, sender.Config{
//	    URL:      "https://telemetry.example.com/notify",
//	    Username: "door",
//	    Password: "secret",
//	}, logger)
//
//	if err := s.Send(ctx, frame); err != nil {
//	    // delivery failed; the frame is dropped, nothing retries
//	}
//
// When no backend URL is configured, use NewNullSender for dry-run mode:
// it accepts every frame and performs no I/O.
//
// # Custom Senders
//
// Implement the Sender interface to deliver to alternative destinations
// (e.g., MQTT, a local socket, a file).
package sender
