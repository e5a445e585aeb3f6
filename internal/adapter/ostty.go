package adapter

import (
	"os"

	"github.com/mattn/go-isatty"
)

// OSTTY reports the capabilities of the process's attached terminal,
// gating things like colour downsampling and cursor escape emission
// that only make sense when output is actually a TTY (as opposed to
// piped to a file or another process, e.g. under teatest).
type OSTTY struct{}

// NewOSTTY returns a ready-to-use OSTTY.
func NewOSTTY() *OSTTY { return &OSTTY{} }

// IsTerminal reports whether fd is attached to a real terminal device.
func (OSTTY) IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
