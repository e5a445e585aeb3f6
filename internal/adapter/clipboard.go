package adapter

import (
	"io"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard frames a selection as an OSC-52 escape sequence and writes
// it to the terminal, per spec.md's non-goal carve-out: "clipboard
// transport (only the escape sequence framing is specified)". The
// multiplexer never talks to an OS clipboard API directly — it emits
// the sequence and lets the attached terminal (or further tmux/screen
// nesting) interpret it.
type Clipboard struct {
	w io.Writer
}

// NewClipboard returns a Clipboard that writes OSC-52 sequences to w
// (typically the attached terminal's output stream).
func NewClipboard(w io.Writer) *Clipboard { return &Clipboard{w: w} }

// Copy frames text as a system-clipboard OSC-52 sequence and writes it.
func (c *Clipboard) Copy(text string) error {
	_, err := osc52.New(text).WriteTo(c.w)
	return err
}

// CopyPrimary frames text as a primary-selection OSC-52 sequence, for
// terminals that distinguish the two. The tab's mouse-release path uses
// Copy, not this method.
func (c *Clipboard) CopyPrimary(text string) error {
	_, err := osc52.New(text).Primary().WriteTo(c.w)
	return err
}
