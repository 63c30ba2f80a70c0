package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (TWESHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("port", os.Getenv("TWESHIP_SERIAL_PORT"), &cfg.SerialPort)
	s.setString("url", os.Getenv("TWESHIP_URL"), &cfg.URL)
	s.setString("username", os.Getenv("TWESHIP_USERNAME"), &cfg.Username)
	s.setString("password", os.Getenv("TWESHIP_PASSWORD"), &cfg.Password)

	if err := s.setIntFromString("baud", os.Getenv("TWESHIP_BAUD"), &cfg.Baud); err != nil {
		return err
	}

	if err := s.setDuration("read-timeout", os.Getenv("TWESHIP_READ_TIMEOUT"), &cfg.ReadTimeout); err != nil {
		return err
	}
	if err := s.setDuration("http-timeout", os.Getenv("TWESHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}

	return nil
}
