package geom

// PaneGeom is a pane's position and size. X/Y are absolute cell
// coordinates; Cols/Rows are resolved against the current display area.
type PaneGeom struct {
	X, Y int
	Cols Dimension
	Rows Dimension
}

// Size is a whole display area or viewport's cell dimensions.
type Size struct {
	Cols, Rows int
}

// Offset is a per-pane content inset: how many cells of the pane's own
// rectangle are reserved for frame/boundary drawing before content starts.
type Offset struct {
	X, Y int
}

// Viewport is the rectangle available to selectable panes, excluding any
// borderless bars registered against the display area.
type Viewport struct {
	X, Y int
	Cols int
	Rows int
}

// ResolvedRect is a pane's absolute, fully-resolved rectangle in cells.
type ResolvedRect struct {
	X, Y, Cols, Rows int
}

// Resolve computes a pane's absolute rectangle against the given parent
// axis sizes (typically the viewport's Cols/Rows).
func (g PaneGeom) Resolve(parentCols, parentRows int) ResolvedRect {
	return ResolvedRect{
		X:    g.X,
		Y:    g.Y,
		Cols: g.Cols.Resolve(parentCols),
		Rows: g.Rows.Resolve(parentRows),
	}
}

// Right returns the exclusive right edge x-coordinate (X + resolved Cols).
func (r ResolvedRect) Right() int { return r.X + r.Cols }

// Bottom returns the exclusive bottom edge y-coordinate (Y + resolved Rows).
func (r ResolvedRect) Bottom() int { return r.Y + r.Rows }

// Contains reports whether the cell (x, y) falls inside the rectangle.
func (r ResolvedRect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Overlaps reports whether two rectangles share any cell.
func (r ResolvedRect) Overlaps(o ResolvedRect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// HorizontallyOverlaps reports whether the two rectangles' y-ranges
// intersect (used to test left/right adjacency candidates).
func (r ResolvedRect) HorizontallyOverlaps(o ResolvedRect) bool {
	return r.Y < o.Bottom() && o.Y < r.Bottom()
}

// VerticallyOverlaps reports whether the two rectangles' x-ranges
// intersect (used to test above/below adjacency candidates).
func (r ResolvedRect) VerticallyOverlaps(o ResolvedRect) bool {
	return r.X < o.Right() && o.X < r.Right()
}

// IsDirectlyLeftOf reports whether r's right edge abuts o's left edge.
func (r ResolvedRect) IsDirectlyLeftOf(o ResolvedRect) bool { return r.Right() == o.X }

// IsDirectlyRightOf reports whether r's left edge abuts o's right edge.
func (r ResolvedRect) IsDirectlyRightOf(o ResolvedRect) bool { return r.X == o.Right() }

// IsDirectlyAbove reports whether r's bottom edge abuts o's top edge.
func (r ResolvedRect) IsDirectlyAbove(o ResolvedRect) bool { return r.Bottom() == o.Y }

// IsDirectlyBelow reports whether r's top edge abuts o's bottom edge.
func (r ResolvedRect) IsDirectlyBelow(o ResolvedRect) bool { return r.Y == o.Bottom() }

// SplitVertically splits a PaneGeom into a left and right half along the
// x-axis, tiling them edge-to-edge: right's X is set to left's actual
// resolved right edge against parentCols, not a flat offset, so the two
// halves stay adjacent (and partition's adjacency queries still match)
// however unevenly Percent happens to resolve at this viewport size.
// Only Percent columns are splittable; Fixed columns return ok=false,
// per spec §4.1 (split_vertically fails on Fixed).
func SplitVertically(g PaneGeom, parentCols int) (left, right PaneGeom, ok bool) {
	half, ok := g.Cols.Halved()
	if !ok {
		return PaneGeom{}, PaneGeom{}, false
	}
	left = g
	left.Cols = half
	right = g
	right.Cols = half
	right.X = g.X + half.Resolve(parentCols)
	return left, right, true
}

// SplitHorizontally splits a PaneGeom into a top and bottom half along the
// y-axis, tiling them edge-to-edge on the same basis as SplitVertically.
// Only Percent rows are splittable; Fixed rows return ok=false.
func SplitHorizontally(g PaneGeom, parentRows int) (top, bottom PaneGeom, ok bool) {
	half, ok := g.Rows.Halved()
	if !ok {
		return PaneGeom{}, PaneGeom{}, false
	}
	top = g
	top.Rows = half
	bottom = g
	bottom.Rows = half
	bottom.Y = g.Y + half.Resolve(parentRows)
	return top, bottom, true
}

// PaneContentOffset computes (dx, dy): the columns/rows reserved inside a
// pane's own rectangle for drawing the boundary between it and its
// neighbour, when global frames are off. dx is 1 unless the pane is flush
// with the right edge of the viewport; dy is analogous for the bottom.
func PaneContentOffset(r ResolvedRect, vp Viewport) Offset {
	var off Offset
	if r.Right() < vp.X+vp.Cols {
		off.X = 1
	}
	if r.Bottom() < vp.Y+vp.Rows {
		off.Y = 1
	}
	return off
}
