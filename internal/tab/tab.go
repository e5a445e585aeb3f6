// Package tab implements the tab coordinator (component H) together
// with the split/close (D), resize (E), focus (F), and fullscreen (G)
// engines that mutate its partition. A Tab owns exactly one pane map;
// all mutation happens on the worker goroutine that calls into this
// package (see events.go), so none of the methods here take a lock —
// matching the teacher's own single-goroutine-per-pane-pair model
// (internal/tui/model.go's Update loop), generalized from a fixed pair
// of panes to an arbitrary map keyed by paneid.ID.
package tab

import (
	"errors"
	"time"

	"github.com/zmux-dev/zmux/internal/adapter"
	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/pane"
	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/partition"
)

// Constants lifted bit-exact from spec.md §6.
const (
	MinWidth     = 5
	MinHeight    = 5
	ResizePct    = 3.5
	CursorAspect = 4.0
)

// Config bundles the tunables a Tab is constructed with.
type Config struct {
	MaxPanes int
}

// DefaultConfig returns sane defaults; MaxPanes has no value named in
// the source material, so a generous but finite ceiling is chosen to
// keep the capacity-enforcement path (new_pane step 1) exercised.
func DefaultConfig() Config {
	return Config{MaxPanes: 50}
}

// Direction is a cardinal resize/focus direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// ErrNoActivePane is returned by operations that require an active
// pane when none is set.
var ErrNoActivePane = errors.New("tab: no active pane")

// PTYCloser is the subset of the PTY host interface the split/close
// engines need: a way to tell the host to tear down a spawned-but-
// unused or closed pane's child process.
type PTYCloser interface {
	ClosePane(id paneid.ID)
}

// Tab owns the pane map and viewport for one tab, and exposes the
// split/resize/focus/fullscreen operations that mutate them.
type Tab struct {
	cfg Config

	panes       map[paneid.ID]*pane.State
	active      *paneid.ID
	panesToHide map[paneid.ID]bool

	viewport    geom.Viewport
	displayArea geom.Size

	fullscreenActive bool
	framesOn         bool
	synchronizeInput bool

	pty       PTYCloser
	clipboard *adapter.Clipboard

	needsFullClear bool
}

// New creates an empty Tab over the given viewport. ptyHost may be nil
// in tests that never exercise capacity enforcement.
func New(viewport geom.Viewport, cfg Config, ptyHost PTYCloser) *Tab {
	return &Tab{
		cfg:         cfg,
		panes:       make(map[paneid.ID]*pane.State),
		panesToHide: make(map[paneid.ID]bool),
		viewport:    viewport,
		displayArea: geom.Size{Cols: viewport.Cols, Rows: viewport.Rows},
		pty:         ptyHost,
	}
}

// Active returns the active pane's id, if any.
func (t *Tab) Active() (paneid.ID, bool) {
	if t.active == nil {
		return paneid.ID{}, false
	}
	return *t.active, true
}

// Pane returns the State for id, if present.
func (t *Tab) Pane(id paneid.ID) (*pane.State, bool) {
	p, ok := t.panes[id]
	return p, ok
}

// Len returns the number of panes currently in the tab, hidden or not.
func (t *Tab) Len() int { return len(t.panes) }

// PaneIDs returns every pane id currently in the tab, hidden or not, in
// deterministic order. Used by the TUI driver to poll for pane exit.
func (t *Tab) PaneIDs() []paneid.ID { return t.orderedIDs() }

// Viewport returns the tab's current viewport.
func (t *Tab) Viewport() geom.Viewport { return t.viewport }

// SetFramesVisible turns pane frames (the boundary border each pane
// renders around its content) on or off tab-wide, matching tab.rs's
// set_pane_frames. Existing panes are flipped in place so the change
// takes effect on the very next render rather than only on panes
// created afterward.
func (t *Tab) SetFramesVisible(on bool) {
	t.framesOn = on
	for _, p := range t.panes {
		p.Framed = on
	}
}

// ToggleSyncPanes flips synchronize-input mode and reports the new
// state. While active, dispatchInput broadcasts input to every
// selectable, non-hidden terminal pane instead of only the active one,
// matching tab.rs's toggle_sync_panes_is_active.
func (t *Tab) ToggleSyncPanes() bool {
	t.synchronizeInput = !t.synchronizeInput
	return t.synchronizeInput
}

// SyncPanesActive reports whether synchronize-input mode is on.
func (t *Tab) SyncPanesActive() bool { return t.synchronizeInput }

// orderedIDs returns every pane id in deterministic iteration order.
func (t *Tab) orderedIDs() []paneid.ID {
	ids := make([]paneid.ID, 0, len(t.panes))
	for id := range t.panes {
		ids = append(ids, id)
	}
	return paneid.Sorted(ids)
}

// selectableVisibleIDs returns, in deterministic order, every pane that
// is selectable and not currently hidden by fullscreen.
func (t *Tab) selectableVisibleIDs() []paneid.ID {
	var out []paneid.ID
	for _, id := range t.orderedIDs() {
		p := t.panes[id]
		if p.Selectable && !t.panesToHide[id] {
			out = append(out, id)
		}
	}
	return out
}

// index builds a partition.Index over every selectable, visible pane's
// resolved rectangle, for use by the split/resize/focus/close engines.
func (t *Tab) index() *partition.Index {
	ids := t.selectableVisibleIDs()
	entries := make([]partition.Entry, 0, len(ids))
	for _, id := range ids {
		p := t.panes[id]
		entries = append(entries, partition.Entry{ID: id, Rect: p.Resolve(t.viewport.Cols, t.viewport.Rows)})
	}
	return partition.New(entries, t.viewport)
}

// touch stamps id as most-recently active at the given time. setActive
// and install pass time.Now(); tests can stamp whatever monotonic value
// they like, since spec.md §5 only requires the sample be taken "at
// render time", not that it be wall-clock.
func (t *Tab) touch(id paneid.ID, at time.Time) {
	if p, ok := t.panes[id]; ok {
		p.Touch(at)
	}
}

// resolvePane resolves id's current rectangle against the viewport.
func (t *Tab) resolvePane(id paneid.ID) (geom.ResolvedRect, bool) {
	p, ok := t.panes[id]
	if !ok {
		return geom.ResolvedRect{}, false
	}
	return p.Resolve(t.viewport.Cols, t.viewport.Rows), true
}

// closePTYChild asks the PTY host to terminate id's backing process,
// used both for an unused spawned-but-unneeded pane (new_pane step 5)
// and for a pane actually being closed.
func (t *Tab) closePTYChild(id paneid.ID) {
	if t.pty != nil {
		t.pty.ClosePane(id)
	}
}
