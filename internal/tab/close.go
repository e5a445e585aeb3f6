package tab

import (
	"sort"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/partition"
)

// ClosePane implements close_pane(id) (spec.md §4.8): exit fullscreen
// first if active, try to reclaim the freed rectangle into an aligned
// neighbouring band, and fall back to a whole-tab re-normalisation when
// no band fits or the freed geometry was Fixed on either axis.
func (t *Tab) ClosePane(id paneid.ID) {
	p, ok := t.panes[id]
	if !ok {
		return
	}
	if t.fullscreenActive {
		t.ExitFullscreen()
		p, ok = t.panes[id]
		if !ok {
			return
		}
	}

	freed := p.Resolve(t.viewport.Cols, t.viewport.Rows)
	wasActive := t.active != nil && *t.active == id

	if p.Geom.Cols.IsPercent() && p.Geom.Rows.IsPercent() && t.reclaimIntoBand(id, freed, wasActive) {
		t.closePTYChild(id)
		t.resizeAllCapabilities()
		return
	}

	delete(t.panes, id)
	if wasActive {
		t.clearActiveAfterRemoval()
	}
	t.renormalize()
	t.closePTYChild(id)
	t.resizeAllCapabilities()
}

// reclaimIntoBand tries, in order, the left/right/above/below contiguous
// band whose outer borders match freed's orthogonal span, growing that
// band to absorb freed's space. Reports whether a band was found and
// grown (in which case the pane has already been removed from the map).
func (t *Tab) reclaimIntoBand(id paneid.ID, freed geom.ResolvedRect, wasActive bool) bool {
	idx := t.index()

	sides := []struct {
		dir  Direction
		span func() (lo, hi int)
	}{
		{Left, func() (int, int) { return freed.Y, freed.Bottom() }},
		{Right, func() (int, int) { return freed.Y, freed.Bottom() }},
		{Up, func() (int, int) { return freed.X, freed.Right() }},
		{Down, func() (int, int) { return freed.X, freed.Right() }},
	}

	for _, side := range sides {
		lo, hi := side.span()
		ids := t.matchingBand(idx, id, side.dir, lo, hi)
		if len(ids) == 0 {
			continue
		}
		t.growBandInto(side.dir, ids, freed)
		delete(t.panes, id)
		if wasActive {
			t.reactivateFromBand(ids)
		}
		return true
	}
	return false
}

// matchingBand locates the aligned neighbours on dir's side of the
// closed pane whose combined span exactly covers [lo, hi) — i.e. a band
// whose outer borders both match the freed rectangle's orthogonal span.
func (t *Tab) matchingBand(idx *partition.Index, id paneid.ID, dir Direction, lo, hi int) []paneid.ID {
	ns := neighborsFor(dir)
	neighbors := ns.directly(idx, id)
	if len(neighbors) == 0 {
		return nil
	}

	var span0, span1 int
	first := true
	for _, n := range neighbors {
		r := t.panes[n].Resolve(t.viewport.Cols, t.viewport.Rows)
		var a, b int
		if ns.axis == axisHorizontal {
			a, b = r.Y, r.Bottom()
		} else {
			a, b = r.X, r.Right()
		}
		if first {
			span0, span1, first = a, b, false
		} else {
			if a < span0 {
				span0 = a
			}
			if b > span1 {
				span1 = b
			}
		}
	}
	if span0 != lo || span1 != hi {
		return nil
	}

	sort.Slice(neighbors, func(i, j int) bool {
		ri := t.panes[neighbors[i]].Resolve(t.viewport.Cols, t.viewport.Rows)
		rj := t.panes[neighbors[j]].Resolve(t.viewport.Cols, t.viewport.Rows)
		if ns.axis == axisHorizontal {
			return ri.Y < rj.Y
		}
		return ri.X < rj.X
	})
	return neighbors
}

// growBandInto grows every pane in the band to cover the freed
// rectangle: extending the band's Left/Right panes' Cols (and sliding
// their X) for a left/right band, or their Rows (and Y) for an
// above/below band.
func (t *Tab) growBandInto(dir Direction, ids []paneid.ID, freed geom.ResolvedRect) {
	for _, id := range ids {
		p := t.panes[id]

		switch dir {
		case Left: // band sits left of the closed pane: extend rightward
			if p.Geom.Cols.IsPercent() {
				p.Geom.Cols = p.Geom.Cols.Add(percentOf(freed.Cols, t.viewport.Cols))
			}
		case Right: // band sits right of the closed pane: extend leftward
			if p.Geom.Cols.IsPercent() {
				p.Geom.Cols = p.Geom.Cols.Add(percentOf(freed.Cols, t.viewport.Cols))
				p.Geom.X = freed.X
			}
		case Up: // band sits above the closed pane: extend downward
			if p.Geom.Rows.IsPercent() {
				p.Geom.Rows = p.Geom.Rows.Add(percentOf(freed.Rows, t.viewport.Rows))
			}
		case Down: // band sits below the closed pane: extend upward
			if p.Geom.Rows.IsPercent() {
				p.Geom.Rows = p.Geom.Rows.Add(percentOf(freed.Rows, t.viewport.Rows))
				p.Geom.Y = freed.Y
			}
		}
	}
}

func percentOf(cells, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(cells) / float64(total)
}

// reactivateFromBand picks the next active pane by walking the
// absorbing band in reverse until a selectable pane turns up, per
// spec.md §4.8.
func (t *Tab) reactivateFromBand(ids []paneid.ID) {
	for i := len(ids) - 1; i >= 0; i-- {
		if p, ok := t.panes[ids[i]]; ok && p.Selectable {
			active := ids[i]
			t.active = &active
			return
		}
	}
	t.clearActiveAfterRemoval()
}

// clearActiveAfterRemoval picks any remaining selectable pane as active,
// or clears Active() entirely if none remain.
func (t *Tab) clearActiveAfterRemoval() {
	for _, id := range t.selectableVisibleIDs() {
		active := id
		t.active = &active
		return
	}
	t.active = nil
}
