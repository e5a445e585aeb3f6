package tab

import (
	"time"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/pane"
	"github.com/zmux-dev/zmux/internal/paneid"
)

// Orientation is the axis a split divides.
type Orientation int

const (
	// Vertical divides the pane left/right.
	Vertical Orientation = iota
	// Horizontal divides the pane top/bottom.
	Horizontal
)

// splittable reports whether a candidate pane meets new_pane's victim
// filter: both axes at least the minimum, and at least one axis more
// than double the minimum (room to actually halve it and stay legible).
func splittable(r geom.ResolvedRect) bool {
	return r.Cols >= MinWidth && r.Rows >= MinHeight &&
		(r.Cols > 2*MinWidth || r.Rows > 2*MinHeight)
}

// score ranks splittable candidates for new_pane: rows * CURSOR_ASPECT
// * cols, correcting for cells being taller than wide.
func score(r geom.ResolvedRect) float64 {
	return float64(r.Rows) * CursorAspect * float64(r.Cols)
}

// chooseVictim returns the largest-by-score splittable selectable pane.
func (t *Tab) chooseVictim() (paneid.ID, bool) {
	var best paneid.ID
	var bestScore float64
	found := false
	for _, id := range t.selectableVisibleIDs() {
		r, ok := t.resolvePane(id)
		if !ok || !splittable(r) {
			continue
		}
		if s := score(r); !found || s > bestScore {
			best, bestScore, found = id, s, true
		}
	}
	return best, found
}

// enforceCapacity closes the oldest (least-recently-touched) panes
// until the tab is at or under MaxPanes, per new_pane step 1.
func (t *Tab) enforceCapacity() {
	if t.cfg.MaxPanes <= 0 {
		return
	}
	for len(t.panes) >= t.cfg.MaxPanes {
		oldest, ok := t.oldestPane()
		if !ok {
			return
		}
		t.ClosePane(oldest)
	}
}

func (t *Tab) oldestPane() (paneid.ID, bool) {
	var oldest paneid.ID
	var oldestAt time.Time
	found := false
	for _, id := range t.orderedIDs() {
		p := t.panes[id]
		if !found || p.LastActive.Before(oldestAt) {
			oldest, oldestAt, found = id, p.LastActive, true
		}
	}
	return oldest, found
}

// install adds a pane to the map at the given geometry and sets it
// active.
func (t *Tab) install(id paneid.ID, cap pane.Capability, g geom.PaneGeom, selectable bool) {
	t.panes[id] = &pane.State{
		ID:         id,
		Cap:        cap,
		Geom:       g,
		Selectable: selectable,
		Framed:     t.framesOn,
	}
	t.touch(id, time.Now())
	active := id
	t.active = &active
}

// NewPane implements new_pane(pid) (spec.md §4.4): enforce capacity,
// exit fullscreen, fill the viewport if this is the first pane,
// otherwise split the largest eligible victim and install the new pane
// into the lower/right half.
func (t *Tab) NewPane(id paneid.ID, cap pane.Capability, selectable bool) error {
	t.enforceCapacity()
	if t.fullscreenActive {
		t.ExitFullscreen()
	}

	if len(t.panes) == 0 {
		t.install(id, cap, geom.PaneGeom{X: 0, Y: 0, Cols: geom.Percent(100), Rows: geom.Percent(100)}, selectable)
		t.resizeCapability(id)
		return nil
	}

	victim, ok := t.chooseVictim()
	if !ok {
		t.closePTYChild(id)
		return nil
	}

	vp := t.panes[victim]
	r := vp.Resolve(t.viewport.Cols, t.viewport.Rows)

	var orientation Orientation
	if float64(r.Rows)*CursorAspect > float64(r.Cols) && r.Rows > 2*MinHeight {
		orientation = Horizontal
	} else {
		orientation = Vertical
	}
	return t.splitVictim(victim, id, cap, orientation, selectable)
}

// splitVictim halves victim's geometry along orientation, shrinks
// victim into the first half, and installs newID into the second.
func (t *Tab) splitVictim(victim, newID paneid.ID, cap pane.Capability, orientation Orientation, selectable bool) error {
	vp := t.panes[victim]
	var first, second geom.PaneGeom
	var ok bool
	switch orientation {
	case Vertical:
		first, second, ok = geom.SplitVertically(vp.Geom, t.viewport.Cols)
	case Horizontal:
		first, second, ok = geom.SplitHorizontally(vp.Geom, t.viewport.Rows)
	}
	if !ok {
		// Fixed-dimension victim: splitting is a documented no-op
		// (spec.md §4.10); the spawned child is unused.
		t.closePTYChild(newID)
		return nil
	}

	vp.Geom = first
	t.install(newID, cap, second, selectable)
	t.resizeCapability(victim)
	t.resizeCapability(newID)
	return nil
}

// HorizontalSplit implements horizontal_split(pid): split the active
// pane top/bottom, rejecting if it's too short to halve.
func (t *Tab) HorizontalSplit(newID paneid.ID, cap pane.Capability, selectable bool) error {
	return t.splitActive(newID, cap, Horizontal, selectable)
}

// VerticalSplit implements vertical_split(pid): split the active pane
// left/right, rejecting if it's too narrow to halve.
func (t *Tab) VerticalSplit(newID paneid.ID, cap pane.Capability, selectable bool) error {
	return t.splitActive(newID, cap, Vertical, selectable)
}

func (t *Tab) splitActive(newID paneid.ID, cap pane.Capability, orientation Orientation, selectable bool) error {
	active, ok := t.Active()
	if !ok {
		t.closePTYChild(newID)
		return ErrNoActivePane
	}
	r, ok := t.resolvePane(active)
	if !ok {
		t.closePTYChild(newID)
		return ErrNoActivePane
	}
	switch orientation {
	case Horizontal:
		if r.Rows <= 2*MinHeight {
			t.closePTYChild(newID)
			return nil
		}
	case Vertical:
		if r.Cols <= 2*MinWidth {
			t.closePTYChild(newID)
			return nil
		}
	}
	return t.splitVictim(active, newID, cap, orientation, selectable)
}

// resizeCapability pushes a pane's freshly-resolved cell size down to
// its backing Capability (PTY resize / plugin resize notification).
func (t *Tab) resizeCapability(id paneid.ID) {
	p, ok := t.panes[id]
	if !ok || p.Cap == nil {
		return
	}
	r := p.Resolve(t.viewport.Cols, t.viewport.Rows)
	p.Cap.Resize(r.Cols, r.Rows) //nolint:errcheck
}
