package tab

import (
	"testing"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
)

func threePaneRow(tb *Tab) (a, b, c paneid.ID) {
	a, b, c = paneid.Terminal(1), paneid.Terminal(2), paneid.Terminal(3)
	// X offsets match Percent(100/3) against an 80-col viewport resolving
	// to 26 cells each (truncated), so DirectlyLeftOf/RightOf's exact-edge
	// match actually fires.
	installPane(tb, a, geom.PaneGeom{X: 0, Y: 0, Cols: geom.Percent(100.0 / 3), Rows: geom.Percent(100)}, true)
	installPane(tb, b, geom.PaneGeom{X: 26, Y: 0, Cols: geom.Percent(100.0 / 3), Rows: geom.Percent(100)}, true)
	installPane(tb, c, geom.PaneGeom{X: 52, Y: 0, Cols: geom.Percent(100.0 / 3), Rows: geom.Percent(100)}, true)
	return a, b, c
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.05
}

// Scenario 5: resize-right cascades. Three-pane row A|B|C each Percent
// 33.3, B active, resize_right: A unchanged, B grows by ResizePct, C
// shrinks by ResizePct.
func TestResizeRightCascades(t *testing.T) {
	tb := newTestTab(80, 24)
	a, b, c := threePaneRow(tb)
	tb.active = &b

	if moved := tb.ResizeRight(); !moved {
		t.Fatal("ResizeRight() = false, want true")
	}

	pa, _ := tb.Pane(a)
	pb, _ := tb.Pane(b)
	pc, _ := tb.Pane(c)

	if !almostEqual(pa.Geom.Cols.Percent, 100.0/3) {
		t.Errorf("A.Percent = %v, want unchanged ~33.3", pa.Geom.Cols.Percent)
	}
	if !almostEqual(pb.Geom.Cols.Percent, 36.8) {
		t.Errorf("B.Percent = %v, want ~36.8", pb.Geom.Cols.Percent)
	}
	if !almostEqual(pc.Geom.Cols.Percent, 29.8) {
		t.Errorf("C.Percent = %v, want ~29.8", pc.Geom.Cols.Percent)
	}
}

// Permission denied if C would fall below the 3.5% floor: shrink C down
// to exactly ResizePct first, then a further resize_right on B must be a
// no-op (resize is grow-only, and growPermitted requires C - the right
// neighbour - to keep at least ResizePct after giving up ResizePct).
func TestResizeRightDeniedWhenNeighbourAtFloor(t *testing.T) {
	tb := newTestTab(80, 24)
	a, b, c := threePaneRow(tb)
	pc, _ := tb.Pane(c)
	pc.Geom.Cols = geom.Percent(ResizePct)
	tb.active = &b

	if moved := tb.ResizeRight(); moved {
		t.Error("ResizeRight() = true, want false (C has no room left to shrink)")
	}
	if pc.Geom.Cols.Percent != ResizePct {
		t.Errorf("C.Percent changed to %v despite denied resize", pc.Geom.Cols.Percent)
	}
	_ = a
}

// Round-trip law: resize_right; resize_left with Δ=3.5% is identity when
// both were permitted.
func TestResizeRightThenLeftIsIdentity(t *testing.T) {
	tb := newTestTab(80, 24)
	a, b, c := threePaneRow(tb)
	tb.active = &b
	before := map[paneid.ID]float64{
		a: percentOfPane(tb, a),
		b: percentOfPane(tb, b),
		c: percentOfPane(tb, c),
	}

	if !tb.ResizeRight() {
		t.Fatal("ResizeRight() = false")
	}
	if !tb.ResizeLeft() {
		t.Fatal("ResizeLeft() = false")
	}

	for id, want := range before {
		if got := percentOfPane(tb, id); !almostEqual(got, want) {
			t.Errorf("pane %v Percent = %v, want back to %v", id, got, want)
		}
	}
}

func percentOfPane(tb *Tab, id paneid.ID) float64 {
	p, _ := tb.Pane(id)
	return p.Geom.Cols.Percent
}

func TestResizeWholeTabRenormalizesAndClearsFrame(t *testing.T) {
	tb := newTestTab(80, 24)
	a, b, c := threePaneRow(tb)
	tb.ResizeWholeTab(100, 30)

	if tb.viewport.Cols != 100 || tb.viewport.Rows != 30 {
		t.Fatalf("viewport = %+v, want 100x30", tb.viewport)
	}
	if !tb.needsFullClear {
		t.Error("needsFullClear should be set after ResizeWholeTab")
	}

	sum := percentOfPane(tb, a) + percentOfPane(tb, b) + percentOfPane(tb, c)
	if !almostEqual(sum, 100) {
		t.Errorf("Percent sum across the row = %v, want ~100", sum)
	}
}

func TestResizeNoActivePaneIsNoop(t *testing.T) {
	tb := newTestTab(80, 24)
	if tb.ResizeRight() {
		t.Error("ResizeRight() on an empty tab should be false")
	}
}
