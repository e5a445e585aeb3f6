package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zmux-dev/zmux/internal/config"
	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/panetest"
	"github.com/zmux-dev/zmux/internal/tab"
)

// exitableFake augments panetest.Fake with an Exited method so
// allPanesExited's type-assertion path can be exercised.
type exitableFake struct {
	*panetest.Fake
	exited bool
}

func (e *exitableFake) Exited() bool { return e.exited }

func newTestModel(cols, rows int) (*model, *exitableFake, *exitableFake) {
	vp := geom.Viewport{X: 0, Y: 0, Cols: cols, Rows: rows}
	tb := tab.New(vp, tab.DefaultConfig(), nil)

	one := &exitableFake{Fake: panetest.NewFake()}
	two := &exitableFake{Fake: panetest.NewFake()}
	//nolint:errcheck
	tb.NewPane(paneid.Terminal(1), one, true)
	//nolint:errcheck
	tb.VerticalSplit(paneid.Terminal(2), two, true)

	m := &model{cfg: config.Default(), tb: tb, started: true}
	return m, one, two
}

func TestContentRowsReservesBottomRow(t *testing.T) {
	m := &model{cfg: config.Default(), height: 24}
	if got := m.contentRows(); got != 23 {
		t.Errorf("contentRows() = %d, want 23", got)
	}
}

func TestContentRowsFloorsAtMinHeight(t *testing.T) {
	m := &model{cfg: config.Default(), height: 2}
	if got := m.contentRows(); got != tab.MinHeight {
		t.Errorf("contentRows() = %d, want floor of %d", got, tab.MinHeight)
	}
}

func TestAllPanesExitedFalseWhileAnyPaneRunning(t *testing.T) {
	m, one, two := newTestModel(80, 24)
	one.exited = true
	two.exited = false

	if m.allPanesExited() {
		t.Error("allPanesExited() = true while a pane is still running")
	}
}

func TestAllPanesExitedTrueWhenEveryPaneDone(t *testing.T) {
	m, one, two := newTestModel(80, 24)
	one.exited = true
	two.exited = true

	if !m.allPanesExited() {
		t.Error("allPanesExited() = false, want true once every pane has exited")
	}
}

func TestAllPanesExitedFalseOnEmptyTab(t *testing.T) {
	vp := geom.Viewport{X: 0, Y: 0, Cols: 80, Rows: 24}
	m := &model{cfg: config.Default(), tb: tab.New(vp, tab.DefaultConfig(), nil), started: true}

	if m.allPanesExited() {
		t.Error("allPanesExited() on an empty tab should stay false (never spawned anything yet)")
	}
}

func TestKeyBytesPrintableText(t *testing.T) {
	got := keyBytes(tea.Key{Text: "a"})
	if string(got) != "a" {
		t.Errorf("keyBytes(text a) = %q, want %q", got, "a")
	}
}

func TestKeyBytesSpecialKeys(t *testing.T) {
	cases := []struct {
		key  tea.Key
		want string
	}{
		{tea.Key{Code: tea.KeyEnter}, "\r"},
		{tea.Key{Code: tea.KeyTab}, "\t"},
		{tea.Key{Code: tea.KeyBackspace}, "\x7f"},
		{tea.Key{Code: tea.KeyEscape}, "\x1b"},
		{tea.Key{Code: tea.KeyUp}, "\x1b[A"},
		{tea.Key{Code: tea.KeyLeft}, "\x1b[D"},
	}
	for _, tc := range cases {
		got := keyBytes(tc.key)
		if string(got) != tc.want {
			t.Errorf("keyBytes(%+v) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestKeyBytesCtrlLetter(t *testing.T) {
	got := keyBytes(tea.Key{Code: 'c', Mod: tea.ModCtrl})
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("keyBytes(Ctrl+c) = %v, want [0x03]", got)
	}
}

func TestKeyBytesUnknownKeyIsEmpty(t *testing.T) {
	// No Text and a Code this package doesn't special-case: nothing to send.
	got := keyBytes(tea.Key{Code: 0})
	if len(got) != 0 {
		t.Errorf("keyBytes(unhandled code) = %v, want empty", got)
	}
}
