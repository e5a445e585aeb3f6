// Package render composes the frames rendered by each pane's
// Capability.Render into a single positioned output, generalizing the
// teacher's fixed two-pane dualPaneLayer.Draw to an arbitrary set of
// panes located by internal/partition. The teacher draws its two
// emulators straight into a live bubbletea tea.Screen cell buffer
// (internal/tui/model.go's dualPaneLayer.Draw); a tab coordinator has
// no such buffer to draw into (it hands finished bytes to a PTY/socket
// writer instead of a running Program), so this package positions panes
// with x/ansi's standalone escape builders (CursorPosition, EraseDisplay,
// Show/HideCursor) rather than the Screen/Cell API, which only exists
// inside a live bubbletea loop.
package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
)

// cursorTo returns the CSI sequence moving the cursor to the given
// 1-indexed (row, col), built with x/ansi's named escape builder rather
// than a hand-formatted literal.
func cursorTo(row, col int) string {
	return ansi.CursorPosition(col, row)
}

// PaneFrame is one pane's rendered content and placement, as handed to
// Compose by the tab coordinator after calling Capability.Render() on
// every pane.
type PaneFrame struct {
	ID      paneid.ID
	Rect    geom.ResolvedRect
	Content string // pane-relative rows, '\n'-separated
	Focused bool
	Framed  bool
	Border  string // ANSI sequence selecting this pane's boundary colour
}

// Compose concatenates every pane's content into a single ANSI byte
// stream that positions each pane's rows at its absolute screen
// coordinates via cursor moves, mirroring spec.md's flow description
// ("concatenates outputs with ANSI positioning, emits to I"). Panes
// are drawn in the order given; callers typically sort by paneid for
// determinism.
func Compose(panes []PaneFrame, vp geom.Viewport) string {
	var b strings.Builder
	b.WriteString(ansi.HideCursor)

	for _, p := range panes {
		writePane(&b, p)
	}
	return b.String()
}

func writePane(b *strings.Builder, p PaneFrame) {
	contentRect := p.Rect
	if p.Framed {
		drawFrame(b, p)
		contentRect = geom.ResolvedRect{
			X:    p.Rect.X + 1,
			Y:    p.Rect.Y + 1,
			Cols: p.Rect.Cols - 2,
			Rows: p.Rect.Rows - 2,
		}
	}
	if contentRect.Cols <= 0 || contentRect.Rows <= 0 {
		return
	}

	lines := strings.Split(p.Content, "\n")
	for row := 0; row < contentRect.Rows && row < len(lines); row++ {
		b.WriteString(cursorTo(contentRect.Y+row+1, contentRect.X+1))
		b.WriteString(truncateToWidth(lines[row], contentRect.Cols))
	}
}

// truncateToWidth clips s to at most w display cells, accounting for
// wide runes via go-runewidth so multi-cell glyphs never get split.
func truncateToWidth(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "")
}

// drawFrame draws a single-line box around p.Rect using the teacher's
// box-drawing glyph set, coloured with p.Border.
func drawFrame(b *strings.Builder, p PaneFrame) {
	r := p.Rect
	corner := func(x, y int, glyph string) {
		b.WriteString(cursorTo(y+1, x+1))
		b.WriteString(p.Border)
		b.WriteString(glyph)
		b.WriteString(ansi.ResetStyle)
	}
	hline := func(y int) {
		b.WriteString(cursorTo(y+1, r.X+2))
		b.WriteString(p.Border)
		b.WriteString(strings.Repeat("─", max0(r.Cols-2)))
		b.WriteString(ansi.ResetStyle)
	}
	vline := func(y int) {
		corner(r.X, y, "│")
		corner(r.Right()-1, y, "│")
	}

	corner(r.X, r.Y, "╭")
	hline(r.Y)
	corner(r.Right()-1, r.Y, "╮")
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		vline(y)
	}
	corner(r.X, r.Bottom()-1, "╰")
	hline(r.Bottom() - 1)
	corner(r.Right()-1, r.Bottom()-1, "╯")
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
