// Package tui drives an internal/tab.Tab with bubbletea v2, generalizing
// the teacher's fixed dual-pane model (cmd0/cmd1, a hardcoded focused
// int) into an N-pane driver: pane creation, focus movement, splits,
// resize, and fullscreen are all tab operations bound to key chords
// behind a Ctrl+A meta prefix, the same prefix scheme the teacher used
// for its one Tab/q binding.
package tui

import (
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zmux-dev/zmux/internal/adapter"
	"github.com/zmux-dev/zmux/internal/config"
	"github.com/zmux-dev/zmux/internal/geom"
	"github.com/zmux-dev/zmux/internal/layoutfile"
	"github.com/zmux-dev/zmux/internal/paneid"
	"github.com/zmux-dev/zmux/internal/session"
	"github.com/zmux-dev/zmux/internal/style"
	"github.com/zmux-dev/zmux/internal/tab"
)

// tickMsg triggers periodic checks (process exit, screen refresh).
type tickMsg time.Time

func doTick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run launches the TUI, spawning shellCmd as the first pane (or, if
// layout is non-nil, the panes described by it) and driving the
// resulting Tab until the program exits or every pane's process has
// exited.
func Run(cfg *config.Config, layout *layoutfile.File, shellCmd string, sess *session.State) error {
	m := &model{
		cfg:      cfg,
		layout:   layout,
		shellCmd: shellCmd,
		pty:      adapter.NewPTYHost(),
		sess:     sess,
	}

	var opts []tea.ProgramOption
	if cfg.Input.MouseEnabled {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	m.cleanup()
	return err
}

// model is the bubbletea model driving a single Tab.
type model struct {
	cfg      *config.Config
	layout   *layoutfile.File
	shellCmd string

	tb      *tab.Tab
	pty     *adapter.PTYHost
	palette *style.Palette
	sess    *session.State

	nextFD     int
	metaActive bool
	framesOn   bool
	width      int
	height     int
	started    bool

	cleanupOnce sync.Once
}

// Init returns the initial command.
func (m *model) Init() tea.Cmd {
	if m.sess != nil {
		m.sess.Attach()
	}
	return doTick()
}

// Update handles messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		if m.started {
			ms := tea.Mouse(msg)
			m.tb.Dispatch(tab.Event{Kind: tab.EventMouseLeft, X: ms.X, Y: ms.Y})
		}
		return m, nil

	case tea.MouseMotionMsg:
		if m.started {
			ms := tea.Mouse(msg)
			m.tb.Dispatch(tab.Event{Kind: tab.EventMouseHold, X: ms.X, Y: ms.Y})
		}
		return m, nil

	case tea.MouseReleaseMsg:
		if m.started {
			ms := tea.Mouse(msg)
			m.tb.Dispatch(tab.Event{Kind: tab.EventMouseRelease, X: ms.X, Y: ms.Y})
		}
		return m, nil

	case tickMsg:
		if m.started && m.allPanesExited() {
			m.cleanup()
			return m, tea.Quit
		}
		return m, doTick()
	}

	return m, nil
}

// contentRows is the number of rows given to the Tab's viewport, after
// reserving the bottom rows for the status bar.
func (m *model) contentRows() int {
	rows := m.height - m.cfg.Viewport.ReserveBottomRows
	if rows < tab.MinHeight {
		rows = tab.MinHeight
	}
	return rows
}

// handleResize builds the Tab on first resize, or forwards subsequent
// resizes to it.
func (m *model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	rows := m.contentRows()
	if m.width <= 0 || rows <= 0 {
		return m, nil
	}

	if !m.started {
		viewport := geom.Viewport{X: 0, Y: 0, Cols: m.width, Rows: rows}
		m.tb = tab.New(viewport, tab.Config{MaxPanes: m.cfg.Tab.MaxPanes}, m.pty)
		m.framesOn = m.cfg.Style.FramesOn
		m.tb.SetFramesVisible(m.framesOn)
		m.palette = style.Detect(8)
		if err := m.spawnInitialPanes(m.width, rows); err != nil {
			return m, tea.Quit
		}
		m.started = true
		return m, nil
	}

	m.tb.Dispatch(tab.Event{Kind: tab.EventResize, Cols: m.width, Rows: rows})
	return m, nil
}

// spawnInitialPanes installs the first pane(s) into the freshly created
// Tab: either the panes named by a layout file, spawned in the file's
// leaf order and joined by successive vertical splits of the active
// pane (an approximation of the layout's split tree: the layout's
// percentages and split orientations are not replayed, only its command
// list), or a single shell if no layout was given.
func (m *model) spawnInitialPanes(cols, rows int) error {
	if m.layout == nil {
		return m.spawnPane(cols, rows, m.shellCmd, true)
	}

	slots, err := layoutfile.Resolve(m.layout, cols, rows)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return m.spawnPane(cols, rows, m.shellCmd, true)
	}
	for i, slot := range slots {
		command := slot.Command
		if command == "" {
			command = m.shellCmd
		}
		if err := m.spawnPane(cols, rows, command, i == 0); err != nil {
			return err
		}
	}
	return nil
}

// spawnPane starts command in a new PTY and installs it into the Tab,
// either as the tab's first pane or by vertically splitting the active pane.
func (m *model) spawnPane(cols, rows int, command string, first bool) error {
	id := paneid.Terminal(m.nextFD)
	m.nextFD++

	cmd := exec.Command(config.Shell(), "-c", command)
	cap, err := m.pty.Spawn(id, cols, rows, cmd)
	if err != nil {
		return err
	}

	if first {
		return m.tb.NewPane(id, cap, true)
	}
	return m.tb.VerticalSplit(id, cap, true)
}

// allPanesExited reports whether every terminal pane's child process
// has exited (plugin panes have no process to wait on, so they are
// treated as always-live for this check).
func (m *model) allPanesExited() bool {
	if m.tb.Len() == 0 {
		return false
	}
	for _, id := range m.tb.PaneIDs() {
		p, ok := m.tb.Pane(id)
		if !ok || p.Cap == nil {
			continue
		}
		exiter, ok := p.Cap.(interface{ Exited() bool })
		if !ok || !exiter.Exited() {
			return false
		}
	}
	return true
}

// handleKey processes key events. Ctrl+A enters meta mode, matching the
// teacher's Ctrl+A Tab/q bindings; the generalized chord set adds the
// rest of the tab operations.
func (m *model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if !m.started {
		return m, nil
	}

	key := tea.Key(msg)

	if m.metaActive {
		m.metaActive = false
		return m, m.handleMetaKey(key)
	}

	if key.Code == 'a' && key.Mod == tea.ModCtrl {
		m.metaActive = true
		return m, nil
	}

	m.sendKey(key)
	return m, nil
}

// handleMetaKey dispatches the key chord following a Ctrl+A prefix.
func (m *model) handleMetaKey(key tea.Key) tea.Cmd {
	switch {
	case key.Code == 'q' && key.Mod == 0:
		m.cleanup()
		return tea.Quit
	case key.Code == tea.KeyTab && key.Mod == 0:
		m.tb.FocusNext()
	case key.Code == tea.KeyTab && key.Mod == tea.ModShift:
		m.tb.FocusPrevious()
	case key.Code == tea.KeyLeft:
		m.tb.MoveFocusLeft()
	case key.Code == tea.KeyRight:
		m.tb.MoveFocusRight()
	case key.Code == tea.KeyUp:
		m.tb.MoveFocusUp()
	case key.Code == tea.KeyDown:
		m.tb.MoveFocusDown()
	case key.Code == 'h' && key.Mod == 0:
		m.tb.ResizeLeft()
	case key.Code == 'l' && key.Mod == 0:
		m.tb.ResizeRight()
	case key.Code == 'k' && key.Mod == 0:
		m.tb.ResizeUp()
	case key.Code == 'j' && key.Mod == 0:
		m.tb.ResizeDown()
	case key.Code == '%' && key.Mod == 0:
		m.splitFocused(false)
	case key.Code == '"' && key.Mod == 0:
		m.splitFocused(true)
	case key.Code == 'x' && key.Mod == 0:
		if active, ok := m.tb.Active(); ok {
			m.tb.ClosePane(active)
		}
	case key.Code == 'z' && key.Mod == 0:
		m.tb.ToggleFullscreen()
	case key.Code == 'f' && key.Mod == 0:
		m.framesOn = !m.framesOn
		m.tb.SetFramesVisible(m.framesOn)
	case key.Code == 's' && key.Mod == 0:
		m.tb.ToggleSyncPanes()
	case key.Code == 'a' && key.Mod == tea.ModCtrl:
		// Ctrl+A Ctrl+A: send a literal Ctrl+A to the active pane.
		m.sendKey(tea.Key{Code: 'a', Mod: tea.ModCtrl})
	}
	return nil
}

// splitFocused splits the active pane, spawning a fresh shell.
// horizontal selects a top/bottom split instead of left/right.
func (m *model) splitFocused(horizontal bool) {
	active, ok := m.tb.Active()
	if !ok {
		return
	}
	p, ok := m.tb.Pane(active)
	if !ok {
		return
	}
	rect := p.Resolve(m.tb.Viewport().Cols, m.tb.Viewport().Rows)

	id := paneid.Terminal(m.nextFD)
	m.nextFD++

	cmd := exec.Command(config.Shell(), "-c", m.shellCmd)
	cap, err := m.pty.Spawn(id, rect.Cols, rect.Rows, cmd)
	if err != nil {
		return
	}

	if horizontal {
		m.tb.HorizontalSplit(id, cap, true) //nolint:errcheck
	} else {
		m.tb.VerticalSplit(id, cap, true) //nolint:errcheck
	}
}

// sendKey forwards a key event to the active pane as raw bytes, if one
// is set and still running.
func (m *model) sendKey(key tea.Key) {
	if !m.started {
		return
	}
	data := keyBytes(key)
	if len(data) == 0 {
		return
	}
	m.tb.Dispatch(tab.Event{Kind: tab.EventInput, Data: data})
}

// keyBytes encodes a key press into the bytes a PTY-backed pane expects
// to receive, covering printable text and the control sequences used
// often enough in everyday terminal use (arrows, enter, tab, backspace,
// escape, and Ctrl+letter).
func keyBytes(key tea.Key) []byte {
	if key.Text != "" {
		return []byte(key.Text)
	}

	switch key.Code {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyEscape:
		return []byte{0x1b}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyHome:
		return []byte("\x1b[H")
	case tea.KeyEnd:
		return []byte("\x1b[F")
	case tea.KeyDelete:
		return []byte("\x1b[3~")
	case tea.KeyPgUp:
		return []byte("\x1b[5~")
	case tea.KeyPgDown:
		return []byte("\x1b[6~")
	}

	if key.Mod == tea.ModCtrl && key.Code >= 'a' && key.Code <= 'z' {
		return []byte{byte(key.Code) - 'a' + 1}
	}

	return nil
}

// cleanup closes every pane. Safe to call multiple times.
func (m *model) cleanup() {
	m.cleanupOnce.Do(func() {
		if m.tb == nil {
			return
		}
		for _, id := range m.tb.PaneIDs() {
			if p, ok := m.tb.Pane(id); ok && p.Cap != nil {
				p.Cap.Close() //nolint:errcheck
			}
		}
		if m.sess != nil {
			m.sess.Detach()
		}
	})
}

// View renders the Tab's current frame plus a one-line status bar.
func (m *model) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if !m.started {
		v.SetContent("Waiting for terminal size...")
		return v
	}

	var b strings.Builder
	b.WriteString(m.tb.Render(m.palette))
	b.WriteString(m.statusLine())
	v.SetContent(b.String())
	return v
}

// statusLine draws a one-line footer naming the active pane and the
// meta-prefix reminder, positioned on the first row below the tab's
// viewport.
func (m *model) statusLine() string {
	if m.cfg.Viewport.ReserveBottomRows <= 0 {
		return ""
	}
	row := m.contentRows() + 1
	active, _ := m.tb.Active()
	return "\x1b[" + strconv.Itoa(row) + ";1H" +
		"  " + active.String() + "  |  Ctrl+A %: vsplit  \": hsplit  x: close  z: fullscreen  f: frames  s: sync  q: quit"
}
