package tab

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/render"
	"github.com/zmux-dev/zmux/internal/style"
)

// Aliases onto x/ansi's named escape builders; see internal/render's
// doc comment for why this package positions panes directly rather than
// through bubbletea's live-screen Cell API.
const (
	hideCursor = ansi.HideCursor
	showCursor = ansi.ShowCursor
	resetStyle = ansi.ResetStyle
)

var eraseScreen = ansi.EraseDisplay(2)

func cursorTo(row, col int) string {
	return ansi.CursorPosition(col, row)
}

// Render implements the render step of spec.md §4.9: hide-cursor,
// optional full clear, every non-hidden pane's content positioned at
// its resolved rectangle, boundary output when global frames are off,
// then the cursor restored at the active pane's translated position
// (or hidden if it has none to report). Render returns "" when there's
// no active pane, matching the "suppress entirely" rule; the session-
// detached half of that rule is the caller's responsibility (it has no
// visibility into session state).
func (t *Tab) Render(palette *style.Palette) string {
	active, ok := t.Active()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(hideCursor)
	if t.needsFullClear {
		b.WriteString(eraseScreen)
		t.needsFullClear = false
	}

	frames := make([]render.PaneFrame, 0, len(t.panes))
	for _, id := range t.orderedIDs() {
		p := t.panes[id]
		if t.panesToHide[id] {
			continue
		}
		content, _ := p.Cap.Render()
		border := ""
		if palette != nil {
			border = palette.Downsample(palette.Border(p.BoundaryColorIndex))
			if id == active {
				border = palette.Downsample(palette.Focused())
			}
		}
		frames = append(frames, render.PaneFrame{
			ID:      id,
			Rect:    p.Resolve(t.viewport.Cols, t.viewport.Rows),
			Content: content,
			Focused: id == active,
			Framed:  t.framesOn,
			Border:  border,
		})
	}
	b.WriteString(render.Compose(frames, t.viewport))

	if !t.framesOn {
		b.WriteString(t.boundaryOutput(active))
	}

	b.WriteString(t.cursorTrailer(active))
	return b.String()
}

// boundaryOutput draws the thin single-cell separators between
// borderless panes, used only when global frames are off (spec.md
// §4.9's "boundary output (only when frames are off)").
func (t *Tab) boundaryOutput(active paneid.ID) string {
	var b strings.Builder
	idx := t.index()
	for _, id := range t.selectableVisibleIDs() {
		r, ok := idx.Rect(id)
		if !ok {
			continue
		}
		off := geom.PaneContentOffset(r, t.viewport)
		if off.X > 0 {
			for y := r.Y; y < r.Bottom(); y++ {
				b.WriteString(cursorTo(y+1, r.Right()+1))
				b.WriteString("│")
			}
		}
		if off.Y > 0 {
			for x := r.X; x < r.Right(); x++ {
				b.WriteString(cursorTo(r.Bottom()+1, x+1))
				b.WriteString("─")
			}
		}
	}
	b.WriteString(resetStyle)
	return b.String()
}

// cursorTrailer restores the cursor at the active pane's translated
// position if it has one to report, otherwise leaves it hidden.
func (t *Tab) cursorTrailer(active paneid.ID) string {
	p, ok := t.panes[active]
	if !ok || p.Cap == nil {
		return ""
	}
	x, y, ok := p.Cap.CursorPosition()
	if !ok {
		return ""
	}
	r := p.Resolve(t.viewport.Cols, t.viewport.Rows)
	off := geom.Offset{}
	if !t.framesOn {
		off = geom.PaneContentOffset(r, t.viewport)
	} else {
		off = geom.Offset{X: 1, Y: 1}
	}
	var b strings.Builder
	b.WriteString(cursorTo(r.Y+off.Y+y+1, r.X+off.X+x+1))
	b.WriteString(showCursor)
	return b.String()
}
