package tab

import (
	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
)

// ToggleFullscreen implements toggle_fullscreen() (spec.md §4.7):
// entering hides every other selectable visible pane and overrides the
// active pane's geometry to the full viewport; exiting reverses both.
func (t *Tab) ToggleFullscreen() {
	if t.fullscreenActive {
		t.ExitFullscreen()
		return
	}
	t.EnterFullscreen()
}

// EnterFullscreen stores the set of panes to hide, installs a
// viewport-sized geometry override on the active pane, and forces a
// full repaint.
func (t *Tab) EnterFullscreen() {
	active, ok := t.Active()
	if !ok || t.fullscreenActive {
		return
	}

	var others []paneid.ID
	for _, id := range t.selectableVisibleIDs() {
		if id != active {
			others = append(others, id)
		}
	}
	if len(others) == 0 {
		return
	}
	for _, id := range others {
		t.panesToHide[id] = true
	}

	p := t.panes[active]
	override := geom.PaneGeom{
		X:    t.viewport.X,
		Y:    t.viewport.Y,
		Cols: geom.Percent(100),
		Rows: geom.Percent(100),
	}
	p.GeomOverride = &override

	t.fullscreenActive = true
	t.needsFullClear = true
	t.resizeAllCapabilities()
}

// ExitFullscreen clears the active pane's geometry override, unhides
// every pane fullscreen had hidden, and re-lays out the tab against its
// current display area so the restored panes reappear without
// artifacts.
func (t *Tab) ExitFullscreen() {
	if !t.fullscreenActive {
		return
	}

	if active, ok := t.Active(); ok {
		if p, ok := t.panes[active]; ok {
			p.GeomOverride = nil
		}
	}
	for id := range t.panesToHide {
		delete(t.panesToHide, id)
	}

	t.fullscreenActive = false
	t.needsFullClear = true
	t.viewport.Cols = t.displayArea.Cols
	t.viewport.Rows = t.displayArea.Rows
	t.renormalize()
	t.resizeAllCapabilities()
}
