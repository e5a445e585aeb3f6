// Package config provides configuration types and defaults for zmux.
package config

import (
	"os"
	"time"
)

// Shell returns the user's login shell from $SHELL, falling back to
// /bin/sh when unset — the shell new panes spawn when no explicit
// command is given.
func Shell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// Config holds all configuration for zmux.
type Config struct {
	Tab         TabConfig         `yaml:"tab" mapstructure:"tab"`
	Viewport    ViewportConfig    `yaml:"viewport" mapstructure:"viewport"`
	Input       InputConfig       `yaml:"input" mapstructure:"input"`
	Style       StyleConfig       `yaml:"style" mapstructure:"style"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// TabConfig holds tunables passed straight through to tab.Config.
type TabConfig struct {
	MaxPanes int `yaml:"max_panes" mapstructure:"max_panes"`
}

// ViewportConfig reserves rows at the top and bottom of the display
// area for borderless chrome (tab bar, status bar) that the tab
// coordinator's viewport excludes from the selectable pane area. Only
// ReserveBottomRows is read by the TUI driver; ReserveTopRows is carried
// in the config but does not change the viewport.
type ViewportConfig struct {
	ReserveTopRows    int `yaml:"reserve_top_rows" mapstructure:"reserve_top_rows"`
	ReserveBottomRows int `yaml:"reserve_bottom_rows" mapstructure:"reserve_bottom_rows"`
}

// InputConfig holds input-handling settings.
type InputConfig struct {
	MouseEnabled     bool          `yaml:"mouse_enabled" mapstructure:"mouse_enabled"`
	ScrollLines      int           `yaml:"scroll_lines" mapstructure:"scroll_lines"`
	SynchronizeInput bool          `yaml:"synchronize_input" mapstructure:"synchronize_input"`
	DoubleClick      time.Duration `yaml:"double_click" mapstructure:"double_click"`
}

// StyleConfig controls the boundary colour palette.
type StyleConfig struct {
	// ColorProfile is one of "auto", "ascii", "ansi", "ansi256", "truecolor".
	ColorProfile string `yaml:"color_profile" mapstructure:"color_profile"`
	FramesOn     bool   `yaml:"frames_on" mapstructure:"frames_on"`
}

// PathsConfig holds file paths for logs, socket, and session state.
type PathsConfig struct {
	LogDir string `yaml:"log_dir" mapstructure:"log_dir"`
	Socket string `yaml:"socket" mapstructure:"socket"`
	State  string `yaml:"state" mapstructure:"state"`
	PID    string `yaml:"pid" mapstructure:"pid"`
}

// LogRotationConfig holds settings for log file rotation
// (lumberjack-based automatic rotation, see internal/logging).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Tab: TabConfig{
			MaxPanes: 50,
		},
		Viewport: ViewportConfig{
			ReserveTopRows:    0,
			ReserveBottomRows: 1, // status bar
		},
		Input: InputConfig{
			MouseEnabled:     true,
			ScrollLines:      3,
			SynchronizeInput: false,
			DoubleClick:      300 * time.Millisecond,
		},
		Style: StyleConfig{
			ColorProfile: "auto",
			FramesOn:     true,
		},
		Paths: PathsConfig{
			LogDir: ".zmux/logs",
			Socket: ".zmux/zmux.sock",
			State:  ".zmux/state.json",
			PID:    ".zmux/zmux.pid",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
