package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zmux-dev/zmux/internal/config"
	"github.com/zmux-dev/zmux/internal/layoutfile"
	"github.com/zmux-dev/zmux/internal/logging"
	"github.com/zmux-dev/zmux/internal/session"
	"github.com/zmux-dev/zmux/internal/tui"
)

var (
	layoutPath string
	shellFlag  string
)

// runCmd launches the TUI against the current terminal.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a zmux session in the current terminal",
	Long:  `run attaches a new zmux tab to the current terminal, spawning either a single shell or the panes described by a layout file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	runCmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "path to a layout file describing the panes to spawn")
	runCmd.Flags().StringVar(&shellFlag, "shell", "", "command to run in the first pane (defaults to $SHELL)")
}

// runTUI wires together config, logging, an optional layout file, and a
// session.State, then hands off to internal/tui.Run.
func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return fatal(err)
	}

	logRes, err := logging.Setup(cfg.Paths.LogDir, parseLogLevel(logLevel), logging.RotationConfig{
		MaxSizeMB:  cfg.LogRotation.MaxSizeMB,
		MaxBackups: cfg.LogRotation.MaxBackups,
		MaxAgeDays: cfg.LogRotation.MaxAgeDays,
		Compress:   cfg.LogRotation.Compress,
	})
	if err != nil {
		return fatal(err)
	}
	defer logRes.Close() //nolint:errcheck

	var layout *layoutfile.File
	if layoutPath != "" {
		data, err := os.ReadFile(layoutPath)
		if err != nil {
			return fatal(fmt.Errorf("reading layout file: %w", err))
		}
		layout, err = layoutfile.Parse(data)
		if err != nil {
			return fatal(err)
		}
	}

	shellCmd := shellFlag
	if shellCmd == "" {
		shellCmd = config.Shell()
	}
	sess := session.New(session.Detached)

	logRes.Logger.Info("starting zmux session", "layout", layoutPath != "", "log_path", logRes.Path)

	return tui.Run(cfg, layout, shellCmd, sess)
}
