// Package pane implements the polymorphic pane capability (component B):
// one behavioural contract shared by terminal and plugin panes, plus the
// attribute bag (geometry, flags, last-active timestamp) the tab
// coordinator keeps per pane.
package pane

import (
	"time"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
)

// Capability is the behavioural contract every concrete pane (terminal or
// plugin) implements. It never needs to know its own position: the tab
// coordinator supplies the content rectangle on every call that needs one.
type Capability interface {
	// Ingest delivers input bytes to the pane's backing process (a
	// terminal pane writes them to its PTY; a plugin pane sends them to
	// the plugin host as an MCP tool call).
	Ingest(data []byte) error

	// TransformInput adapts raw user input before it is written to the
	// pane's backing process (e.g. cursor-key mode translation).
	TransformInput(data []byte) []byte

	// CursorPosition reports the pane-relative cursor cell, if the pane
	// currently has one to report.
	CursorPosition() (x, y int, ok bool)

	// Resize propagates a new content-area size (in cells) to the
	// pane's backing process and emulator.
	Resize(cols, rows int) error

	// Render returns the ANSI representation of everything that changed
	// since the last Render call, or ok=false if nothing changed.
	Render() (out string, ok bool)

	// ScrollBy scrolls the pane's viewport by the given number of lines
	// (positive = toward more recent output).
	ScrollBy(lines int)

	// StartSelection/UpdateSelection/EndSelection implement click-drag
	// text selection in pane-relative cells; EndSelection returns the
	// selected text.
	StartSelection(x, y int)
	UpdateSelection(x, y int)
	EndSelection() string

	// Close releases the pane's backing process and any OS resources.
	Close() error
}

// State is the attribute bag the tab coordinator maintains per pane:
// everything spec.md §3 lists under "Pane" besides the polymorphic
// behaviour, which lives behind Cap.
type State struct {
	ID paneid.ID
	Cap Capability

	Geom         geom.PaneGeom
	GeomOverride *geom.PaneGeom // non-nil while fullscreen is active on this pane

	Selectable       bool
	InvisibleBorders bool
	Framed           bool
	ContentOffset    geom.Offset

	LastActive time.Time

	// BoundaryColorIndex selects this pane's frame colour from the
	// active palette (internal/style), stable across the pane's
	// lifetime so repeated renders don't flicker between colours.
	BoundaryColorIndex int
}

// EffectiveGeom returns the geometry override if fullscreen has installed
// one on this pane, otherwise the base geometry.
func (s *State) EffectiveGeom() geom.PaneGeom {
	if s.GeomOverride != nil {
		return *s.GeomOverride
	}
	return s.Geom
}

// Resolve resolves the effective geometry against the given parent axis
// sizes (typically the viewport).
func (s *State) Resolve(parentCols, parentRows int) geom.ResolvedRect {
	return s.EffectiveGeom().Resolve(parentCols, parentRows)
}

// Touch stamps the pane as most-recently active at time t.
func (s *State) Touch(t time.Time) { s.LastActive = t }
