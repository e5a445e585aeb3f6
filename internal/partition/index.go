// Package partition implements spatial queries over a tab's pane map
// (component C): direct neighbours, aligned sets, and the eight
// contiguous-band walks the resize and close engines cascade through.
// Grounded on the zellij tab.rs pane_ids_directly_*, panes_*_aligned_*,
// and *_aligned_contiguous_panes_* family of private helpers.
package partition

import (
	"sort"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
)

// Entry is one pane's id and resolved rectangle, as seen by the index.
type Entry struct {
	ID   paneid.ID
	Rect geom.ResolvedRect
}

// Index answers spatial queries over a snapshot of pane rectangles. It
// holds no reference back to the tab; callers rebuild it (cheaply, it's
// just a slice) whenever the pane map changes shape.
type Index struct {
	entries  []Entry
	byID     map[paneid.ID]geom.ResolvedRect
	viewport geom.Viewport
}

// New builds an Index over the given entries, resolved against viewport
// for the purpose of computing band borders (the downward/rightward walks
// start from the viewport's far edge; a band with no members falls back
// to the target's own edge).
func New(entries []Entry, viewport geom.Viewport) *Index {
	idx := &Index{
		entries:  entries,
		byID:     make(map[paneid.ID]geom.ResolvedRect, len(entries)),
		viewport: viewport,
	}
	for _, e := range entries {
		idx.byID[e.ID] = e.Rect
	}
	return idx
}

func (idx *Index) rect(id paneid.ID) geom.ResolvedRect { return idx.byID[id] }

// Rect returns id's resolved rectangle and whether id is present in the
// index.
func (idx *Index) Rect(id paneid.ID) (geom.ResolvedRect, bool) {
	r, ok := idx.byID[id]
	return r, ok
}

// PaneAt returns the id of the pane whose rectangle contains the cell
// (x, y), used for mouse-click hit testing. Panes never overlap, so at
// most one id can match.
func (idx *Index) PaneAt(x, y int) (paneid.ID, bool) {
	for _, e := range idx.entries {
		if e.Rect.Contains(x, y) {
			return e.ID, true
		}
	}
	return paneid.ID{}, false
}

// Overlapping returns every pane whose rectangle overlaps r, used to
// validate the non-overlap invariant after a mutation.
func (idx *Index) Overlapping(r geom.ResolvedRect) []paneid.ID {
	var out []paneid.ID
	for _, e := range idx.entries {
		if e.Rect.Overlaps(r) {
			out = append(out, e.ID)
		}
	}
	return out
}

// DirectlyLeftOf returns the ids of every pane whose right edge abuts
// id's left edge. Mirrors pane_ids_directly_left_of; unlike the Rust
// original it does not special-case x==0 against the tab's own origin,
// since a zero origin naturally has no panes to its left.
func (idx *Index) DirectlyLeftOf(id paneid.ID) []paneid.ID {
	target := idx.rect(id)
	var out []paneid.ID
	for _, e := range idx.entries {
		if e.ID == id {
			continue
		}
		if e.Rect.Right() == target.X {
			out = append(out, e.ID)
		}
	}
	return out
}

// DirectlyRightOf returns the ids of every pane whose left edge abuts
// id's right edge.
func (idx *Index) DirectlyRightOf(id paneid.ID) []paneid.ID {
	target := idx.rect(id)
	var out []paneid.ID
	for _, e := range idx.entries {
		if e.ID == id {
			continue
		}
		if e.Rect.X == target.Right() {
			out = append(out, e.ID)
		}
	}
	return out
}

// DirectlyAbove returns the ids of every pane whose bottom edge abuts
// id's top edge.
func (idx *Index) DirectlyAbove(id paneid.ID) []paneid.ID {
	target := idx.rect(id)
	var out []paneid.ID
	for _, e := range idx.entries {
		if e.ID == id {
			continue
		}
		if e.Rect.Bottom() == target.Y {
			out = append(out, e.ID)
		}
	}
	return out
}

// DirectlyBelow returns the ids of every pane whose top edge abuts id's
// bottom edge.
func (idx *Index) DirectlyBelow(id paneid.ID) []paneid.ID {
	target := idx.rect(id)
	var out []paneid.ID
	for _, e := range idx.entries {
		if e.ID == id {
			continue
		}
		if e.Rect.Y == target.Bottom() {
			out = append(out, e.ID)
		}
	}
	return out
}

// TopAligned returns every other pane sharing id's y-coordinate.
func (idx *Index) TopAligned(id paneid.ID) []paneid.ID {
	target := idx.rect(id)
	var out []paneid.ID
	for _, e := range idx.entries {
		if e.ID != id && e.Rect.Y == target.Y {
			out = append(out, e.ID)
		}
	}
	return out
}

// BottomAligned returns every other pane sharing id's bottom edge.
func (idx *Index) BottomAligned(id paneid.ID) []paneid.ID {
	target := idx.rect(id)
	var out []paneid.ID
	for _, e := range idx.entries {
		if e.ID != id && e.Rect.Bottom() == target.Bottom() {
			out = append(out, e.ID)
		}
	}
	return out
}

// LeftAligned returns every other pane sharing id's x-coordinate.
func (idx *Index) LeftAligned(id paneid.ID) []paneid.ID {
	target := idx.rect(id)
	var out []paneid.ID
	for _, e := range idx.entries {
		if e.ID != id && e.Rect.X == target.X {
			out = append(out, e.ID)
		}
	}
	return out
}

// RightAligned returns every other pane sharing id's right edge.
func (idx *Index) RightAligned(id paneid.ID) []paneid.ID {
	target := idx.rect(id)
	var out []paneid.ID
	for _, e := range idx.entries {
		if e.ID != id && e.Rect.Right() == target.Right() {
			out = append(out, e.ID)
		}
	}
	return out
}

// Band is the result of a contiguous-band walk: the coordinate of the
// border the band stopped at, and the ids of the panes it accumulated
// (in walk order, target-adjacent first).
type Band struct {
	Border int
	IDs    []paneid.ID
}

// RightAlignedContiguousAbove walks panes right-aligned with id upward
// (decreasing y), accumulating while each candidate's bottom edge abuts
// the running top of the band, then trims to the segment bounded by the
// highest stop border at or below the band. Mirrors
// right_aligned_contiguous_panes_above.
func (idx *Index) RightAlignedContiguousAbove(id paneid.ID, stopBorders []int) Band {
	target := idx.rect(id)
	candidates := idx.rightAlignedRects(id)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Rect.Y > candidates[j].Rect.Y })

	var walked []Entry
	check := target
	for _, c := range candidates {
		if c.Rect.Bottom() == check.Y {
			walked = append(walked, c)
			check = c.Rect
		}
	}

	stops := toSet(stopBorders)
	topBorder := 0
	for _, e := range walked {
		b := e.Rect.Bottom()
		if stops[b] && topBorder < b {
			topBorder = b
		}
	}
	walked = filterEntries(walked, func(e Entry) bool { return e.Rect.Y >= topBorder })
	if len(walked) == 0 {
		topBorder = target.Y
	}
	return Band{Border: topBorder, IDs: idsOf(walked)}
}

// RightAlignedContiguousBelow is the downward mirror of
// RightAlignedContiguousAbove; the walk starts with the viewport's
// bottom edge as its border, and absent neighbours default the border to
// the target's own bottom edge.
func (idx *Index) RightAlignedContiguousBelow(id paneid.ID, stopBorders []int) Band {
	target := idx.rect(id)
	candidates := idx.rightAlignedRects(id)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Rect.Y < candidates[j].Rect.Y })

	var walked []Entry
	check := target
	for _, c := range candidates {
		if c.Rect.Y == check.Bottom() {
			walked = append(walked, c)
			check = c.Rect
		}
	}

	stops := toSet(stopBorders)
	bottomBorder := idx.viewport.Y + idx.viewport.Rows
	for _, e := range walked {
		t := e.Rect.Y
		if stops[t] && t < bottomBorder {
			bottomBorder = t
		}
	}
	walked = filterEntries(walked, func(e Entry) bool { return e.Rect.Bottom() <= bottomBorder })
	if len(walked) == 0 {
		bottomBorder = target.Bottom()
	}
	return Band{Border: bottomBorder, IDs: idsOf(walked)}
}

// LeftAlignedContiguousAbove mirrors RightAlignedContiguousAbove over
// the left-aligned set.
func (idx *Index) LeftAlignedContiguousAbove(id paneid.ID, stopBorders []int) Band {
	target := idx.rect(id)
	candidates := idx.leftAlignedRects(id)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Rect.Y > candidates[j].Rect.Y })

	var walked []Entry
	check := target
	for _, c := range candidates {
		if c.Rect.Bottom() == check.Y {
			walked = append(walked, c)
			check = c.Rect
		}
	}

	stops := toSet(stopBorders)
	topBorder := 0
	for _, e := range walked {
		b := e.Rect.Bottom()
		if stops[b] && topBorder < b {
			topBorder = b
		}
	}
	walked = filterEntries(walked, func(e Entry) bool { return e.Rect.Y >= topBorder })
	if len(walked) == 0 {
		topBorder = target.Y
	}
	return Band{Border: topBorder, IDs: idsOf(walked)}
}

// LeftAlignedContiguousBelow mirrors RightAlignedContiguousBelow over
// the left-aligned set.
func (idx *Index) LeftAlignedContiguousBelow(id paneid.ID, stopBorders []int) Band {
	target := idx.rect(id)
	candidates := idx.leftAlignedRects(id)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Rect.Y < candidates[j].Rect.Y })

	var walked []Entry
	check := target
	for _, c := range candidates {
		if c.Rect.Y == check.Bottom() {
			walked = append(walked, c)
			check = c.Rect
		}
	}

	stops := toSet(stopBorders)
	bottomBorder := idx.viewport.Y + idx.viewport.Rows
	for _, e := range walked {
		t := e.Rect.Y
		if stops[t] && t < bottomBorder {
			bottomBorder = t
		}
	}
	walked = filterEntries(walked, func(e Entry) bool { return e.Rect.Bottom() <= bottomBorder })
	if len(walked) == 0 {
		bottomBorder = target.Bottom()
	}
	return Band{Border: bottomBorder, IDs: idsOf(walked)}
}

// TopAlignedContiguousLeft walks panes top-aligned with id leftward
// (decreasing x), mirroring top_aligned_contiguous_panes_to_the_left.
func (idx *Index) TopAlignedContiguousLeft(id paneid.ID, stopBorders []int) Band {
	target := idx.rect(id)
	candidates := idx.topAlignedRects(id)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Rect.X > candidates[j].Rect.X })

	var walked []Entry
	check := target
	for _, c := range candidates {
		if c.Rect.Right() == check.X {
			walked = append(walked, c)
			check = c.Rect
		}
	}

	stops := toSet(stopBorders)
	leftBorder := 0
	for _, e := range walked {
		r := e.Rect.Right()
		if stops[r] && leftBorder < r {
			leftBorder = r
		}
	}
	walked = filterEntries(walked, func(e Entry) bool { return e.Rect.X >= leftBorder })
	if len(walked) == 0 {
		leftBorder = target.X
	}
	return Band{Border: leftBorder, IDs: idsOf(walked)}
}

// TopAlignedContiguousRight mirrors TopAlignedContiguousLeft rightward.
func (idx *Index) TopAlignedContiguousRight(id paneid.ID, stopBorders []int) Band {
	target := idx.rect(id)
	candidates := idx.topAlignedRects(id)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Rect.X < candidates[j].Rect.X })

	var walked []Entry
	check := target
	for _, c := range candidates {
		if c.Rect.X == check.Right() {
			walked = append(walked, c)
			check = c.Rect
		}
	}

	stops := toSet(stopBorders)
	rightBorder := idx.viewport.X + idx.viewport.Cols
	for _, e := range walked {
		l := e.Rect.X
		if stops[l] && rightBorder > l {
			rightBorder = l
		}
	}
	walked = filterEntries(walked, func(e Entry) bool { return e.Rect.Right() <= rightBorder })
	if len(walked) == 0 {
		rightBorder = target.Right()
	}
	return Band{Border: rightBorder, IDs: idsOf(walked)}
}

// BottomAlignedContiguousLeft mirrors TopAlignedContiguousLeft over the
// bottom-aligned set.
func (idx *Index) BottomAlignedContiguousLeft(id paneid.ID, stopBorders []int) Band {
	target := idx.rect(id)
	candidates := idx.bottomAlignedRects(id)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Rect.X > candidates[j].Rect.X })

	var walked []Entry
	check := target
	for _, c := range candidates {
		if c.Rect.Right() == check.X {
			walked = append(walked, c)
			check = c.Rect
		}
	}

	stops := toSet(stopBorders)
	leftBorder := 0
	for _, e := range walked {
		r := e.Rect.Right()
		if stops[r] && leftBorder < r {
			leftBorder = r
		}
	}
	walked = filterEntries(walked, func(e Entry) bool { return e.Rect.X >= leftBorder })
	if len(walked) == 0 {
		leftBorder = target.X
	}
	return Band{Border: leftBorder, IDs: idsOf(walked)}
}

// BottomAlignedContiguousRight mirrors TopAlignedContiguousRight over
// the bottom-aligned set.
func (idx *Index) BottomAlignedContiguousRight(id paneid.ID, stopBorders []int) Band {
	target := idx.rect(id)
	candidates := idx.bottomAlignedRects(id)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Rect.X < candidates[j].Rect.X })

	var walked []Entry
	check := target
	for _, c := range candidates {
		if c.Rect.X == check.Right() {
			walked = append(walked, c)
			check = c.Rect
		}
	}

	stops := toSet(stopBorders)
	rightBorder := idx.viewport.X + idx.viewport.Cols
	for _, e := range walked {
		l := e.Rect.X
		if stops[l] && rightBorder > l {
			rightBorder = l
		}
	}
	walked = filterEntries(walked, func(e Entry) bool { return e.Rect.Right() <= rightBorder })
	if len(walked) == 0 {
		rightBorder = target.Right()
	}
	return Band{Border: rightBorder, IDs: idsOf(walked)}
}

func (idx *Index) rightAlignedRects(id paneid.ID) []Entry {
	target := idx.rect(id)
	var out []Entry
	for _, e := range idx.entries {
		if e.ID != id && e.Rect.Right() == target.Right() {
			out = append(out, e)
		}
	}
	return out
}

func (idx *Index) leftAlignedRects(id paneid.ID) []Entry {
	target := idx.rect(id)
	var out []Entry
	for _, e := range idx.entries {
		if e.ID != id && e.Rect.X == target.X {
			out = append(out, e)
		}
	}
	return out
}

func (idx *Index) topAlignedRects(id paneid.ID) []Entry {
	target := idx.rect(id)
	var out []Entry
	for _, e := range idx.entries {
		if e.ID != id && e.Rect.Y == target.Y {
			out = append(out, e)
		}
	}
	return out
}

func (idx *Index) bottomAlignedRects(id paneid.ID) []Entry {
	target := idx.rect(id)
	var out []Entry
	for _, e := range idx.entries {
		if e.ID != id && e.Rect.Bottom() == target.Bottom() {
			out = append(out, e)
		}
	}
	return out
}

func toSet(vals []int) map[int]bool {
	m := make(map[int]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

func filterEntries(entries []Entry, keep func(Entry) bool) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func idsOf(entries []Entry) []paneid.ID {
	ids := make([]paneid.ID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
