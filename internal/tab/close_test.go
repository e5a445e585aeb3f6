package tab

import (
	"testing"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/panetest"
)

// Scenario 4: close reclaims width. From the vertical split in
// split_test.go's scenario-3 layout, closing the active right pane should
// grow the left pane back to fill the viewport.
func TestCloseReclaimsWidth(t *testing.T) {
	tb := newTestTab(80, 24)
	id1 := paneid.Terminal(1)
	if err := tb.NewPane(id1, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	id2 := paneid.Terminal(2)
	if err := tb.VerticalSplit(id2, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}

	active, _ := tb.Active()
	if active != id2 {
		t.Fatalf("active = %v, want right pane %v", active, id2)
	}

	host := tb.pty.(*fakePTY)
	tb.ClosePane(id2)

	if tb.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tb.Len())
	}
	if _, ok := tb.Pane(id2); ok {
		t.Fatal("id2 should have been removed")
	}
	left := rect(tb, id1)
	if want := (geom.ResolvedRect{X: 0, Y: 0, Cols: 80, Rows: 24}); left != want {
		t.Errorf("left = %+v, want %+v", left, want)
	}
	p, _ := tb.Pane(id1)
	if p.Geom.Cols.Percent != 100 {
		t.Errorf("left.Geom.Cols.Percent = %v, want 100", p.Geom.Cols.Percent)
	}

	newActive, ok := tb.Active()
	if !ok || newActive != id1 {
		t.Errorf("active after close = %v, %v; want %v, true", newActive, ok, id1)
	}
	if len(host.closed) != 1 || host.closed[0] != id2 {
		t.Errorf("host.closed = %v, want [%v]", host.closed, id2)
	}
}

// A Fixed-dimension pane's freed rectangle can never be reclaimed into a
// neighbouring band (spec.md §4.8's documented fallback): closing it must
// fall straight through to deleting the pane and re-normalising the rest
// of the tab instead.
func TestCloseFallsThroughToRenormalizeOnFixedPane(t *testing.T) {
	tb := newTestTab(100, 24)
	docked := paneid.Terminal(1)
	rest := paneid.Terminal(2)

	installPane(tb, docked, geom.PaneGeom{X: 0, Y: 0, Cols: geom.Fixed(20), Rows: geom.Percent(100)}, true)
	installPane(tb, rest, geom.PaneGeom{X: 20, Y: 0, Cols: geom.Percent(80), Rows: geom.Percent(100)}, true)
	tb.active = &docked

	tb.ClosePane(docked)

	if _, ok := tb.Pane(docked); ok {
		t.Fatal("docked pane should have been removed")
	}
	if tb.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tb.Len())
	}
	p, _ := tb.Pane(rest)
	if p.Geom.Cols.Percent != 100 {
		t.Errorf("remaining pane's Cols.Percent = %v, want 100 after renormalisation", p.Geom.Cols.Percent)
	}
	active, ok := tb.Active()
	if !ok || active != rest {
		t.Errorf("active after close = %v, %v; want %v, true", active, ok, rest)
	}
}

func TestToggleFullscreenBeforeCloseHandledSafely(t *testing.T) {
	tb := newTestTab(80, 24)
	id1 := paneid.Terminal(1)
	if err := tb.NewPane(id1, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	id2 := paneid.Terminal(2)
	if err := tb.VerticalSplit(id2, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	tb.EnterFullscreen()
	if !tb.fullscreenActive {
		t.Fatal("expected fullscreen to be active")
	}

	tb.ClosePane(id2)
	if tb.fullscreenActive {
		t.Error("closing a pane must exit fullscreen first")
	}
	if _, ok := tb.Pane(id2); ok {
		t.Error("id2 should have been removed")
	}
}
