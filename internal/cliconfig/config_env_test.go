package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"TWESHIP_SERIAL_PORT":  "/dev/ttyUSB1",
				"TWESHIP_BAUD":         "9600",
				"TWESHIP_URL":          "http://env.example/notify",
				"TWESHIP_USERNAME":     "env-user",
				"TWESHIP_PASSWORD":     "env-pass",
				"TWESHIP_READ_TIMEOUT": "30s",
				"TWESHIP_HTTP_TIMEOUT": "5s",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				SerialPort:  "/dev/ttyUSB1",
				Baud:        9600,
				URL:         "http://env.example/notify",
				Username:    "env-user",
				Password:    "env-pass",
				ReadTimeout: 30 * time.Second,
				HTTPTimeout: 5 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"TWESHIP_SERIAL_PORT": "/dev/ttyUSB1",
				"TWESHIP_URL":         "http://env.example/notify",
			},
			changed: map[string]bool{"port": true},
			initial: Config{
				SerialPort: "/dev/ttyS0",
			},
			expected: Config{
				SerialPort: "/dev/ttyS0",
				URL:        "http://env.example/notify",
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"TWESHIP_READ_TIMEOUT": "not-a-duration",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
		{
			name: "returns error for invalid int",
			envVars: map[string]string{
				"TWESHIP_BAUD": "not-a-number",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
