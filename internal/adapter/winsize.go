package adapter

import (
	"os"

	"golang.org/x/term"
)

// WinSize reads the OS-level size of the process's controlling
// terminal. bubbletea's own driver delivers SIGWINCH as
// tea.WindowSizeMsg once the program is running; this adapter covers
// the narrower case of sizing the very first frame before that program
// starts, or a headless CLI invocation with no bubbletea program
// attached at all. Grounded on the sibling pack repo's
// internal/tui/fallback.go, which probes the same way before falling
// back to a plain-text renderer.
type WinSize struct{}

// NewWinSize returns a ready-to-use WinSize.
func NewWinSize() *WinSize { return &WinSize{} }

// Controlling returns the current size of the process's controlling
// terminal, or ok=false if stdout isn't attached to one.
func (WinSize) Controlling() (cols, rows int, ok bool) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return cols, rows, true
}
