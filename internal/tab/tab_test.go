package tab

import (
	"testing"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/pane"
	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/panetest"
)

// fakePTY records ClosePane calls so tests can assert a spawned child was
// torn down without a real PTY host.
type fakePTY struct {
	closed []paneid.ID
}

func (f *fakePTY) ClosePane(id paneid.ID) { f.closed = append(f.closed, id) }

func newTestTab(cols, rows int) *Tab {
	vp := geom.Viewport{X: 0, Y: 0, Cols: cols, Rows: rows}
	return New(vp, DefaultConfig(), &fakePTY{})
}

// installPane wires a pane directly into the tab's map, bypassing
// split/new_pane, for scenarios (like an even three-pane row) that binary
// halving can't reach in one step.
func installPane(tb *Tab, id paneid.ID, g geom.PaneGeom, selectable bool) *panetest.Fake {
	f := panetest.NewFake()
	tb.panes[id] = &pane.State{ID: id, Cap: f, Geom: g, Selectable: selectable}
	return f
}

func rect(tb *Tab, id paneid.ID) geom.ResolvedRect {
	r, _ := tb.resolvePane(id)
	return r
}

func TestNewTabIsEmpty(t *testing.T) {
	tb := newTestTab(80, 24)
	if tb.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tb.Len())
	}
	if _, ok := tb.Active(); ok {
		t.Fatal("Active() should report false on an empty tab")
	}
}

// Scenario 1: single pane fills viewport.
func TestSinglePaneFillsViewport(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	fake := panetest.NewFake()
	if err := tb.NewPane(id, fake, true); err != nil {
		t.Fatalf("NewPane() error = %v", err)
	}

	active, ok := tb.Active()
	if !ok || active != id {
		t.Fatalf("Active() = %v, %v; want %v, true", active, ok, id)
	}

	r := rect(tb, id)
	want := geom.ResolvedRect{X: 0, Y: 0, Cols: 80, Rows: 24}
	if r != want {
		t.Errorf("rect = %+v, want %+v", r, want)
	}
	p, _ := tb.Pane(id)
	if p.Geom.Cols.Percent != 100 || p.Geom.Rows.Percent != 100 {
		t.Errorf("Geom = %+v, want Percent(100)x Percent(100)", p.Geom)
	}
	if fake.Resizes != 1 {
		t.Errorf("Resizes = %d, want 1 (pushed down on install)", fake.Resizes)
	}
}

func TestClosePTYChildNotifiesHostOnRejectedSplit(t *testing.T) {
	tb := newTestTab(80, 24)
	host := &fakePTY{}
	tb.pty = host

	id1 := paneid.Terminal(1)
	installPane(tb, id1, geom.PaneGeom{Cols: geom.Fixed(80), Rows: geom.Fixed(24)}, true)
	tb.active = &id1

	newID := paneid.Terminal(2)
	if err := tb.VerticalSplit(newID, panetest.NewFake(), true); err != nil {
		t.Fatalf("VerticalSplit() error = %v", err)
	}
	if tb.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (Fixed pane must reject the split)", tb.Len())
	}
	if len(host.closed) != 1 || host.closed[0] != newID {
		t.Errorf("host.closed = %v, want [%v]", host.closed, newID)
	}
}
