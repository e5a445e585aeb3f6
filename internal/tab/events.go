package tab

import (
	"context"

	"github.com/zmux-dev/zmux/internal/adapter"
)

// EventKind tags the Event sum type dispatched to a Tab. Individual pane
// I/O (PTY bytes arriving, plugin frames) is pumped directly by each
// pane's Capability (internal/pane/terminal.go's own io.Copy goroutines,
// internal/pane/plugin.go's MCP round-trips) rather than routed through
// here; the coordinator only serializes the events that mutate shared
// tab state: user input, resize, mouse, scroll, and command operations.
type EventKind int

const (
	EventInput EventKind = iota
	EventResize
	EventMouseLeft
	EventMouseRelease
	EventMouseHold
	EventScroll
)

// Event is one inbound message the tab coordinator's worker goroutine
// dispatches, per spec.md §4.9.
type Event struct {
	Kind EventKind

	// EventInput
	Data []byte

	// EventResize
	Cols, Rows int

	// EventMouse*/EventScroll
	X, Y  int
	Lines int
}

// Dispatch applies one Event to the tab. It is not safe for concurrent
// use: callers serialize Events through a single worker (see Loop),
// matching the teacher's single-goroutine bubbletea Update loop
// generalized from two fixed panes to the active-pane map.
func (t *Tab) Dispatch(ev Event) {
	switch ev.Kind {
	case EventInput:
		t.dispatchInput(ev.Data)
	case EventResize:
		t.ResizeWholeTab(ev.Cols, ev.Rows)
	case EventMouseLeft:
		t.dispatchMouseLeft(ev.X, ev.Y)
	case EventMouseHold:
		t.dispatchMouseHold(ev.X, ev.Y)
	case EventMouseRelease:
		t.dispatchMouseRelease(ev.X, ev.Y)
	case EventScroll:
		t.dispatchScroll(ev.X, ev.Y, ev.Lines)
	}
}

// dispatchInput forwards transformed input bytes to the active pane's
// Capability. Ingest is responsible for the PTY-vs-plugin distinction
// (a terminal pane writes straight to its PTY; a plugin pane relays the
// bytes as an MCP tool call), so the coordinator never special-cases
// pane kind here — except under synchronize-input mode, where the same
// bytes go to every selectable, non-hidden terminal pane instead of
// only the active one (tab.rs's synchronize_is_active).
func (t *Tab) dispatchInput(data []byte) {
	if t.synchronizeInput {
		t.broadcastInput(data)
		return
	}

	active, ok := t.Active()
	if !ok {
		return
	}
	p, ok := t.panes[active]
	if !ok || p.Cap == nil {
		return
	}
	p.Cap.Ingest(p.Cap.TransformInput(data)) //nolint:errcheck
}

// broadcastInput delivers data to every selectable, non-hidden terminal
// pane. Plugin panes are excluded: synchronized keystrokes are a
// terminal-multiplexing feature (typing the same command into several
// shells at once), not something a plugin's MCP tool call protocol
// expects to receive unprompted. A pane is identified as a terminal the
// same way the TUI driver identifies one for exit-polling: by the
// presence of an Exited() bool method.
func (t *Tab) broadcastInput(data []byte) {
	for _, id := range t.selectableVisibleIDs() {
		p := t.panes[id]
		if p.Cap == nil {
			continue
		}
		if _, ok := p.Cap.(interface{ Exited() bool }); !ok {
			continue
		}
		p.Cap.Ingest(p.Cap.TransformInput(data)) //nolint:errcheck
	}
}

// dispatchMouseLeft focuses the pane under the cursor and starts a
// selection there.
func (t *Tab) dispatchMouseLeft(x, y int) {
	idx := t.index()
	id, ok := idx.PaneAt(x, y)
	if !ok {
		return
	}
	t.setActive(id)
	if p := t.panes[id]; p.Cap != nil {
		r, _ := t.resolvePane(id)
		p.Cap.StartSelection(x-r.X, y-r.Y)
	}
}

// dispatchMouseHold updates the active selection as the drag continues.
func (t *Tab) dispatchMouseHold(x, y int) {
	active, ok := t.Active()
	if !ok {
		return
	}
	p := t.panes[active]
	if p.Cap == nil {
		return
	}
	r, _ := t.resolvePane(active)
	p.Cap.UpdateSelection(x-r.X, y-r.Y)
}

// dispatchMouseRelease ends the active selection and copies the
// selected text to the clipboard via OSC-52, per spec.md §4.9.
func (t *Tab) dispatchMouseRelease(x, y int) {
	active, ok := t.Active()
	if !ok {
		return
	}
	p := t.panes[active]
	if p.Cap == nil {
		return
	}
	text := p.Cap.EndSelection()
	if text == "" || t.clipboard == nil {
		return
	}
	t.clipboard.Copy(text) //nolint:errcheck
}

// dispatchScroll routes a scroll event to the pane under the cursor,
// using the same hit-test dispatchMouseLeft uses, rather than the
// always-currently-focused pane.
func (t *Tab) dispatchScroll(x, y, lines int) {
	idx := t.index()
	id, ok := idx.PaneAt(x, y)
	if !ok {
		return
	}
	if p := t.panes[id]; p.Cap != nil {
		p.Cap.ScrollBy(lines)
	}
}

// Loop serially dispatches events from the channel, one at a time, until
// it closes or ctx is cancelled. Dispatch itself is never safe to run
// concurrently (it mutates the pane map without a lock, per the
// package's single-owner model), so the fan-out opportunity lives
// downstream in resizeAllCapabilities instead, not in this loop.
func (t *Tab) Loop(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.Dispatch(ev)
		}
	}
}

// SetClipboard wires the clipboard adapter mouse-release uses to emit
// selected text as an OSC-52 escape.
func (t *Tab) SetClipboard(c *adapter.Clipboard) { t.clipboard = c }
