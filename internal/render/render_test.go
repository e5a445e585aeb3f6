package render_test

import (
	"strings"
	"testing"

	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/render"
)

func TestComposePositionsUnframedContent(t *testing.T) {
	panes := []render.PaneFrame{
		{
			ID:      paneid.Terminal(1),
			Rect:    geom.ResolvedRect{X: 0, Y: 0, Cols: 10, Rows: 2},
			Content: "hello\nworld",
		},
	}
	out := render.Compose(panes, geom.Viewport{Cols: 10, Rows: 2})
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("Compose() = %q, want it to contain both content lines", out)
	}
}

func TestComposeFramedShrinksContentRect(t *testing.T) {
	panes := []render.PaneFrame{
		{
			ID:      paneid.Terminal(1),
			Rect:    geom.ResolvedRect{X: 0, Y: 0, Cols: 12, Rows: 4},
			Content: "line one that is long",
			Framed:  true,
			Border:  "",
		},
	}
	out := render.Compose(panes, geom.Viewport{Cols: 12, Rows: 4})
	if !strings.Contains(out, "╭") || !strings.Contains(out, "╯") {
		t.Errorf("Compose() with Framed=true should draw box corners, got %q", out)
	}
}

func TestComposeEmptyPaneListProducesNoPanic(t *testing.T) {
	out := render.Compose(nil, geom.Viewport{Cols: 80, Rows: 24})
	if out == "" {
		t.Error("Compose() with no panes should still emit the hide-cursor preamble")
	}
}
