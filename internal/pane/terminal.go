package pane

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/charmbracelet/x/vt"
	"github.com/charmbracelet/x/xpty"
)

// Terminal is the PTY-backed Capability implementation: a child process
// wired to a pseudo-terminal and a terminal emulator that tracks its
// screen state. Grounded directly on the teacher's pane.go.
type Terminal struct {
	pty    xpty.Pty
	emu    *vt.SafeEmulator
	cmd    *exec.Cmd
	done   atomic.Bool
	closed atomic.Bool
	once   sync.Once
}

// NewTerminal creates a PTY of the given content size, starts cmd inside
// it, wires up a terminal emulator, and launches the goroutines that pipe
// bytes between the PTY and the emulator.
func NewTerminal(cols, rows int, cmd *exec.Cmd) (*Terminal, error) {
	p, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("creating pty: %w", err)
	}
	if err := p.Start(cmd); err != nil {
		p.Close()
		return nil, fmt.Errorf("starting command: %w", err)
	}

	emu := vt.NewSafeEmulator(cols, rows)
	t := &Terminal{pty: p, emu: emu, cmd: cmd}

	// PTY output -> emulator state updates.
	go func() {
		io.Copy(emu, p) //nolint:errcheck
		t.done.Store(true)
	}()

	// Emulator responses (DA/cursor reports) -> PTY input.
	go func() {
		io.Copy(p, emu) //nolint:errcheck
	}()

	go func() {
		xpty.WaitProcess(context.Background(), cmd) //nolint:errcheck
		t.done.Store(true)
	}()

	return t, nil
}

// Emulator returns the underlying thread-safe terminal emulator, used by
// the render path to pull cell content directly.
func (t *Terminal) Emulator() *vt.SafeEmulator { return t.emu }

// Exited reports whether the child process has exited.
func (t *Terminal) Exited() bool { return t.done.Load() }

// Ingest writes input bytes to the PTY, i.e. to the child process (used
// by the tab's input dispatch and its synchronize-input broadcast).
func (t *Terminal) Ingest(data []byte) error {
	if t.closed.Load() {
		return nil
	}
	_, err := t.pty.Write(data)
	return err
}

// TransformInput is the identity transform for terminal panes: user input
// is written to the PTY as-is. Cursor-key mode translation, if needed, is
// the emulator's responsibility on the way back out.
func (t *Terminal) TransformInput(data []byte) []byte { return data }

// CursorPosition reports the emulator's current cursor cell.
func (t *Terminal) CursorPosition() (x, y int, ok bool) {
	if t.closed.Load() || t.done.Load() {
		return 0, 0, false
	}
	pos := t.emu.CursorPosition()
	return pos.X, pos.Y, true
}

// Resize updates both the PTY and emulator dimensions. No-op once closed
// or exited, matching the teacher's pane.go.
func (t *Terminal) Resize(cols, rows int) error {
	if t.closed.Load() || t.done.Load() {
		return nil
	}
	if err := t.pty.Resize(cols, rows); err != nil {
		return fmt.Errorf("resizing pty: %w", err)
	}
	t.emu.Resize(cols, rows)
	return nil
}

// Render asks the emulator for its current screen content. The emulator
// tracks damage internally; Render always reports ok=true while the pane
// is live so the tab coordinator can decide how to diff frames.
func (t *Terminal) Render() (string, bool) {
	if t.closed.Load() {
		return "", false
	}
	return t.emu.String(), true
}

// ScrollBy is a placeholder hook: full scrollback lives in the terminal
// emulator collaborator (out of scope), so this only needs to exist to
// satisfy Capability and to let tests assert it was invoked.
func (t *Terminal) ScrollBy(lines int) {}

// StartSelection, UpdateSelection and EndSelection keep no selection
// state: the first two record nothing and EndSelection always returns "",
// so a mouse release over a terminal pane copies no text.
func (t *Terminal) StartSelection(x, y int)  {}
func (t *Terminal) UpdateSelection(x, y int) {}
func (t *Terminal) EndSelection() string     { return "" }

// Close shuts down the child process, PTY, and emulator. Safe to call
// multiple times.
func (t *Terminal) Close() error {
	var closeErr error
	t.once.Do(func() {
		t.closed.Store(true)
		if t.cmd.Process != nil && !t.done.Load() {
			t.cmd.Process.Signal(syscall.SIGTERM) //nolint:errcheck
		}
		t.emu.Close()
		closeErr = t.pty.Close()
	})
	return closeErr
}
