package tab

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/zmux-dev/zmux/internal/adapter"
	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/panetest"
)

func TestDispatchInputGoesToActivePane(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	fake := panetest.NewFake()
	if err := tb.NewPane(id, fake, true); err != nil {
		t.Fatal(err)
	}

	tb.Dispatch(Event{Kind: EventInput, Data: []byte("hello")})

	if len(fake.Ingested) != 1 || string(fake.Ingested[0]) != "hello" {
		t.Errorf("Ingested = %v, want [hello]", fake.Ingested)
	}
}

func TestDispatchInputNoopWithNoActivePane(t *testing.T) {
	tb := newTestTab(80, 24)
	tb.Dispatch(Event{Kind: EventInput, Data: []byte("hello")})
}

func TestDispatchResizeResizesWholeTab(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	if err := tb.NewPane(id, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}

	tb.Dispatch(Event{Kind: EventResize, Cols: 100, Rows: 30})

	if tb.viewport.Cols != 100 || tb.viewport.Rows != 30 {
		t.Errorf("viewport = %+v, want 100x30", tb.viewport)
	}
	if !tb.needsFullClear {
		t.Error("needsFullClear should be set after an EventResize")
	}
}

func TestDispatchMouseLeftFocusesAndStartsSelection(t *testing.T) {
	tb := newTestTab(80, 24)
	left := paneid.Terminal(1)
	if err := tb.NewPane(left, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	right := paneid.Terminal(2)
	if err := tb.VerticalSplit(right, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	tb.setActive(right)

	tb.Dispatch(Event{Kind: EventMouseLeft, X: 5, Y: 5})

	active, _ := tb.Active()
	if active != left {
		t.Errorf("active after mouse-left on left pane = %v, want %v", active, left)
	}
}

func TestDispatchMouseHoldUpdatesActivePaneSelection(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	if err := tb.NewPane(id, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	// dispatchMouseHold reads the active pane via Cap; exercised for its
	// side-effect-free path here since Fake's UpdateSelection is a no-op.
	tb.Dispatch(Event{Kind: EventMouseHold, X: 3, Y: 3})
}

func TestDispatchMouseReleaseCopiesSelectionToClipboard(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	fake := panetest.NewFake()
	fake.SelectionText = "copied text"
	if err := tb.NewPane(id, fake, true); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	tb.SetClipboard(adapter.NewClipboard(&buf))

	tb.Dispatch(Event{Kind: EventMouseRelease, X: 1, Y: 1})

	if buf.Len() == 0 {
		t.Error("expected an OSC-52 sequence to be written to the clipboard writer")
	}
}

func TestDispatchMouseReleaseNoopWithEmptySelection(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	if err := tb.NewPane(id, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	tb.SetClipboard(adapter.NewClipboard(&buf))

	tb.Dispatch(Event{Kind: EventMouseRelease, X: 1, Y: 1})

	if buf.Len() != 0 {
		t.Error("empty selection should not write anything to the clipboard")
	}
}

func TestDispatchScrollForwardsToActivePane(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	fake := panetest.NewFake()
	if err := tb.NewPane(id, fake, true); err != nil {
		t.Fatal(err)
	}

	tb.Dispatch(Event{Kind: EventScroll, Lines: -3})

	if len(fake.ScrollCalls) != 1 || fake.ScrollCalls[0] != -3 {
		t.Errorf("ScrollCalls = %v, want [-3]", fake.ScrollCalls)
	}
}

// fakeTerminal augments panetest.Fake with an Exited method so tests can
// exercise the terminal-vs-plugin distinction broadcastInput draws.
type fakeTerminal struct {
	*panetest.Fake
}

func (f *fakeTerminal) Exited() bool { return false }

func TestDispatchScrollHitTestsInsteadOfTargetingActivePane(t *testing.T) {
	tb := newTestTab(80, 24)
	left := paneid.Terminal(1)
	if err := tb.NewPane(left, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}
	right := paneid.Terminal(2)
	rightFake := panetest.NewFake()
	if err := tb.VerticalSplit(right, rightFake, true); err != nil {
		t.Fatal(err)
	}
	// Force the left pane active, then scroll over the right half: a
	// dispatch that still targeted the active pane would scroll left,
	// not right.
	tb.setActive(left)
	rect, _ := tb.index().Rect(right)

	tb.Dispatch(Event{Kind: EventScroll, X: rect.X + 1, Y: rect.Y, Lines: -2})

	if len(rightFake.ScrollCalls) != 1 || rightFake.ScrollCalls[0] != -2 {
		t.Errorf("right pane ScrollCalls = %v, want [-2]", rightFake.ScrollCalls)
	}
}

func TestDispatchInputBroadcastsWhenSyncPanesActive(t *testing.T) {
	tb := newTestTab(80, 24)
	first := paneid.Terminal(1)
	firstFake := &fakeTerminal{panetest.NewFake()}
	if err := tb.NewPane(first, firstFake, true); err != nil {
		t.Fatal(err)
	}
	second := paneid.Terminal(2)
	secondFake := &fakeTerminal{panetest.NewFake()}
	if err := tb.VerticalSplit(second, secondFake, true); err != nil {
		t.Fatal(err)
	}

	if tb.ToggleSyncPanes() != true {
		t.Fatal("ToggleSyncPanes() should report active after the first toggle")
	}

	tb.Dispatch(Event{Kind: EventInput, Data: []byte("x")})

	if len(firstFake.Ingested) != 1 || string(firstFake.Ingested[0]) != "x" {
		t.Errorf("first pane Ingested = %v, want [x]", firstFake.Ingested)
	}
	if len(secondFake.Ingested) != 1 || string(secondFake.Ingested[0]) != "x" {
		t.Errorf("second pane Ingested = %v, want [x]", secondFake.Ingested)
	}

	if tb.ToggleSyncPanes() != false {
		t.Error("ToggleSyncPanes() should report inactive after the second toggle")
	}
	// The split left the second pane active, so the first is the
	// non-active one.
	tb.Dispatch(Event{Kind: EventInput, Data: []byte("y")})
	if len(firstFake.Ingested) != 1 {
		t.Error("input after disabling sync should not reach the non-active pane")
	}
}

func TestSetFramesVisibleUpdatesExistingPanes(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	if err := tb.NewPane(id, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}

	tb.SetFramesVisible(true)
	p, _ := tb.Pane(id)
	if !p.Framed {
		t.Error("SetFramesVisible(true) should mark the existing pane Framed")
	}

	tb.SetFramesVisible(false)
	p, _ = tb.Pane(id)
	if p.Framed {
		t.Error("SetFramesVisible(false) should clear the existing pane's Framed flag")
	}
}

func TestLoopDispatchesUntilChannelCloses(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	fake := panetest.NewFake()
	if err := tb.NewPane(id, fake, true); err != nil {
		t.Fatal(err)
	}

	events := make(chan Event, 2)
	events <- Event{Kind: EventInput, Data: []byte("a")}
	events <- Event{Kind: EventInput, Data: []byte("b")}
	close(events)

	if err := tb.Loop(context.Background(), events); err != nil {
		t.Fatalf("Loop() error = %v", err)
	}
	if len(fake.Ingested) != 2 {
		t.Errorf("Ingested = %v, want 2 events processed", fake.Ingested)
	}
}

func TestLoopReturnsOnContextCancellation(t *testing.T) {
	tb := newTestTab(80, 24)
	id := paneid.Terminal(1)
	if err := tb.NewPane(id, panetest.NewFake(), true); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event)
	done := make(chan error, 1)
	go func() { done <- tb.Loop(ctx, events) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Loop() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Loop() did not return after context cancellation")
	}
}
