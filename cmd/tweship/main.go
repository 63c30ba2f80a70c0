package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	serialadapter "github.com/ogenki/tweship/internal/adapters/serial"
	"github.com/ogenki/tweship/internal/bridge"
	"github.com/ogenki/tweship/internal/cliconfig"
	"github.com/ogenki/tweship/pkg/log"
	"github.com/ogenki/tweship/pkg/sender"
)

const helpDescription = `
Bridge TWE-Lite status frames from a serial mesh coordinator to an HTTP
telemetry backend.

Highlights:
  - Decodes and validates every status-notify line (checksum, version,
    command, relay bound) before anything leaves the process.
  - Ships accepted frames as multipart form posts with optional basic auth.
  - Never stops on a bad line, a quiet port, or a failed delivery.
  - Runs dry without a backend URL: frames are printed, not sent.
`

var exampleUsage = strings.TrimSpace(`
  tweship /dev/ttyUSB0 --url https://telemetry.example.com/notify -u door -p secret
  tweship /dev/ttyUSB0 --baud 38400
  TWESHIP_SERIAL_PORT=/dev/ttyUSB0 tweship
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zl := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "tweship [serial-port]",
		Short:   "Bridge TWE-Lite status frames from a serial mesh to an HTTP telemetry backend",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Args:    cobra.MaximumNArgs(1),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags; a positional port counts as one.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			if len(args) == 1 {
				cfg.SerialPort = args[0]
				changed["port"] = true
			}

			// Load config file first (default ~/.tweship/config.toml),
			// then apply env and flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (TWESHIP_*)
			// These override file config but are overridden by flags.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			// Log configuration (masking the password)
			logCfg := cfg
			if len(logCfg.Password) > 0 {
				logCfg.Password = "*****"
			}
			zl.Info().Interface("config", logCfg).Msg("configuration")

			logger := log.NewZerologAdapterWithLogger(zl)

			// Select the delivery sink once; it is never switched later.
			var sink sender.Sender
			if cfg.DryRun() {
				zl.Warn().Msg("no backend configured, entering dry-run mode")
				sink = sender.NewNullSender()
			} else {
				client := &http.Client{Timeout: cfg.HTTPTimeout}
				sink = sender.NewHTTPSender(client, sender.Config{
					URL:      cfg.URL,
					Username: cfg.Username,
					Password: cfg.Password,
				}, logger)
			}

			// The only fatal condition: the port cannot be opened.
			port, err := serialadapter.Open(serialadapter.Config{
				Port:        cfg.SerialPort,
				Baud:        cfg.Baud,
				ReadTimeout: cfg.ReadTimeout,
			})
			if err != nil {
				return err
			}
			defer port.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			b := bridge.New(port, sink, os.Stdout, logger)
			return b.Run(ctx)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.tweship/config.toml)")
	root.Flags().StringVar(&cfg.SerialPort, "port", cfg.SerialPort, "serial device of the mesh coordinator (also accepted as a positional argument)")
	root.Flags().IntVar(&cfg.Baud, "baud", cfg.Baud, "serial baud rate")
	root.Flags().DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "bounded serial read timeout")

	root.Flags().StringVar(&cfg.URL, "url", cfg.URL, "telemetry endpoint; omit for dry-run mode")
	root.Flags().StringVarP(&cfg.Username, "username", "u", cfg.Username, "basic auth username (optional)")
	root.Flags().StringVarP(&cfg.Password, "password", "p", cfg.Password, "basic auth password (optional)")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "HTTP timeout per delivery")

	if err := root.Execute(); err != nil {
		zl.Error().Err(err).Msg("tweship")
		os.Exit(1)
	}
}
