package tab

import (
	"sort"
	"time"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
)

// FocusNext implements focus_next_pane() (spec.md §4.6): advance to the
// next selectable pane in row-major order, wrapping around. Returns
// false if there is no selectable pane to move to.
func (t *Tab) FocusNext() bool { return t.focusStep(1) }

// FocusPrevious implements focus_previous_pane(), stepping backward
// through the same row-major order.
func (t *Tab) FocusPrevious() bool { return t.focusStep(-1) }

func (t *Tab) focusStep(delta int) bool {
	ids := t.rowMajorSelectableIDs()
	if len(ids) == 0 {
		return false
	}
	active, ok := t.Active()
	if !ok {
		t.setActive(ids[0])
		return true
	}
	idx := indexOf(ids, active)
	if idx < 0 {
		t.setActive(ids[0])
		return true
	}
	next := ((idx+delta)%len(ids) + len(ids)) % len(ids)
	if ids[next] == active {
		return false
	}
	t.setActive(ids[next])
	return true
}

// rowMajorSelectableIDs orders the selectable, visible panes by y then
// x, per spec.md §4.6's "row-major order".
func (t *Tab) rowMajorSelectableIDs() []paneid.ID {
	ids := t.selectableVisibleIDs()
	rects := make(map[paneid.ID]struct{ x, y int }, len(ids))
	for _, id := range ids {
		r, _ := t.resolvePane(id)
		rects[id] = struct{ x, y int }{r.X, r.Y}
	}
	out := append([]paneid.ID(nil), ids...)
	sort.Slice(out, func(i, j int) bool {
		a, b := rects[out[i]], rects[out[j]]
		if a.y != b.y {
			return a.y < b.y
		}
		return a.x < b.x
	})
	return out
}

func indexOf(ids []paneid.ID, id paneid.ID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (t *Tab) setActive(id paneid.ID) {
	active := id
	t.active = &active
	t.touch(id, time.Now())
}

// MoveFocusLeft/Right/Up/Down implement move_focus_<dir>() (spec.md
// §4.6): among selectable panes directly adjacent on the requested
// side whose orthogonal range overlaps the active pane, pick the one
// with the most recent last-active timestamp. Reports whether focus
// actually moved.
func (t *Tab) MoveFocusLeft() bool  { return t.moveFocus(Left) }
func (t *Tab) MoveFocusRight() bool { return t.moveFocus(Right) }
func (t *Tab) MoveFocusUp() bool    { return t.moveFocus(Up) }
func (t *Tab) MoveFocusDown() bool  { return t.moveFocus(Down) }

func (t *Tab) moveFocus(dir Direction) bool {
	active, ok := t.Active()
	if !ok {
		return false
	}
	ns := neighborsFor(dir)
	idx := t.index()
	candidates := ns.directly(idx, active)
	if len(candidates) == 0 {
		return false
	}

	activeRect, _ := t.resolvePane(active)
	var best paneid.ID
	found := false
	for _, id := range candidates {
		r, ok := t.resolvePane(id)
		if !ok || !overlapsOrthogonally(activeRect, r, ns.axis) {
			continue
		}
		p := t.panes[id]
		if !found || p.LastActive.After(t.panes[best].LastActive) {
			best, found = id, true
		}
	}
	if !found {
		return false
	}

	t.setActive(best)
	return true
}

func overlapsOrthogonally(a, b geom.ResolvedRect, ax axis) bool {
	if ax == axisHorizontal {
		return a.HorizontallyOverlaps(b)
	}
	return a.VerticallyOverlaps(b)
}
