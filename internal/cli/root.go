// Package cli provides the Cobra command-line interface for zmux.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zmux-dev/zmux/internal/config"
)

var (
	configFile string
	logLevel   string
)

// rootCmd is the base command for zmux.
var rootCmd = &cobra.Command{
	Use:   "zmux",
	Short: "A terminal multiplexer",
	Long:  `zmux manages panes inside terminal tabs: splits, resizes, focus movement, and fullscreen, over whatever shell or command you point it at.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (overrides global/project config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the effective Config for this invocation, applying
// the defaults -> global -> project -> explicit-file -> flag precedence
// chain (internal/config.Load).
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// parseLogLevel maps the --log-level flag to a slog.Level, defaulting to
// Info on an unrecognized value rather than erroring out of the whole
// command.
func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fatal(err error) error {
	return fmt.Errorf("zmux: %w", err)
}
