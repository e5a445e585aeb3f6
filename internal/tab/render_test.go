package tab

import (
	"strings"
	"testing"

	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/panetest"
)

func TestRenderEmptyWithNoActivePane(t *testing.T) {
	tb := newTestTab(80, 24)
	if out := tb.Render(nil); out != "" {
		t.Errorf("Render() on an empty tab = %q, want \"\"", out)
	}
}

func TestRenderHidesThenShowsCursor(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	fake := panetest.NewFake()
	fake.HasCursor = true
	fake.CursorX, fake.CursorY = 2, 3
	if err := tb.NewPane(id, fake, true); err != nil {
		t.Fatal(err)
	}

	out := tb.Render(nil)
	if !strings.Contains(out, hideCursor) {
		t.Error("Render() should always hide the cursor up front")
	}
	if !strings.Contains(out, showCursor) {
		t.Error("Render() should show the cursor again when the active pane reports one")
	}
}

func TestRenderNoCursorTrailerWhenPaneHasNoCursor(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	fake := panetest.NewFake()
	fake.HasCursor = false
	if err := tb.NewPane(id, fake, true); err != nil {
		t.Fatal(err)
	}

	out := tb.Render(nil)
	if strings.Contains(out, showCursor) {
		t.Error("Render() should not restore the cursor when the active pane has none")
	}
}

func TestRenderFullClearIsOneShot(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	if err := tb.NewPane(id, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	tb.needsFullClear = true

	first := tb.Render(nil)
	if !strings.Contains(first, eraseScreen) {
		t.Error("first Render() after needsFullClear should erase the screen")
	}
	if tb.needsFullClear {
		t.Error("needsFullClear should be cleared after one Render()")
	}

	second := tb.Render(nil)
	if strings.Contains(second, eraseScreen) {
		t.Error("second Render() should not erase the screen again")
	}
}

func TestRenderSkipsHiddenPanes(t *testing.T) {
	tb := newTestTab(80, 24)
	id1 := paneid.Terminal(1)
	fake1 := panetest.NewFake()
	fake1.RenderDirty = true
	fake1.RenderOutput = "PANE-ONE-MARKER"
	if err := tb.NewPane(id1, fake1, true); err != nil {
		t.Fatal(err)
	}
	id2 := paneid.Terminal(2)
	fake2 := panetest.NewFake()
	fake2.RenderDirty = true
	fake2.RenderOutput = "PANE-TWO-MARKER"
	if err := tb.VerticalSplit(id2, fake2, true); err != nil {
		t.Fatal(err)
	}

	tb.EnterFullscreen()
	out := tb.Render(nil)
	if !strings.Contains(out, "PANE-TWO-MARKER") {
		t.Error("Render() while fullscreen should still draw the active (fullscreen) pane")
	}
	if strings.Contains(out, "PANE-ONE-MARKER") {
		t.Error("Render() while fullscreen should not draw the hidden pane")
	}
}

func TestRenderBoundaryOutputOnlyWhenFramesOff(t *testing.T) {
	tb := newTestTab(80, 24)
	id1 := paneid.Terminal(1)
	if err := tb.NewPane(id1, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	id2 := paneid.Terminal(2)
	if err := tb.VerticalSplit(id2, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}

	tb.framesOn = false
	withoutFrames := tb.Render(nil)
	if !strings.Contains(withoutFrames, "│") {
		t.Error("Render() with frames off should draw a boundary separator between panes")
	}

	// Frames draw their sides with the same "│" glyph, so look for the
	// boundary output itself rather than the bare glyph.
	tb.needsFullClear = false
	tb.framesOn = true
	active, _ := tb.Active()
	withFrames := tb.Render(nil)
	if strings.Contains(withFrames, tb.boundaryOutput(active)) {
		t.Error("Render() with frames on should not draw the borderless boundary separator")
	}
}
