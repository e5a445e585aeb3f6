// Package adapter holds the thin shims between the tab coordinator and
// the external collaborators spec.md treats as out of scope: the PTY
// host, the plugin host, the OS TTY surface, and the clipboard sink.
// None of these packages hold any geometry or partition logic; they
// only translate a tab-level request into a call against a real process
// or file descriptor.
package adapter

import (
	"os/exec"
	"sync"

	"github.com/zmux-dev/zmux/internal/pane"
	"github.com/zmux-dev/zmux/internal/paneid"
)

// PTYHost spawns terminal panes and implements tab.PTYCloser so the tab
// coordinator can ask it to tear a spawned child down by id. Grounded on
// the teacher's NewPane/Pane wiring (internal/pane/terminal.go), wrapped
// here so the tab package depends on an interface rather than
// constructing *pane.Terminal directly — useful for test doubles in
// internal/tab's own tests.
type PTYHost struct {
	mu      sync.Mutex
	spawned map[paneid.ID]pane.Capability
}

// NewPTYHost returns a ready-to-use PTYHost.
func NewPTYHost() *PTYHost {
	return &PTYHost{spawned: make(map[paneid.ID]pane.Capability)}
}

// Spawn starts cmd inside a new PTY of the given content size, tracks
// the resulting Capability under id so a later ClosePane(id) can tear
// it down, and returns the Capability for the tab coordinator to
// install.
func (h *PTYHost) Spawn(id paneid.ID, cols, rows int, cmd *exec.Cmd) (pane.Capability, error) {
	cap, err := pane.NewTerminal(cols, rows, cmd)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.spawned[id] = cap
	h.mu.Unlock()
	return cap, nil
}

// ClosePane implements tab.PTYCloser: it closes and forgets the child
// process backing id, if this host spawned one.
func (h *PTYHost) ClosePane(id paneid.ID) {
	h.mu.Lock()
	cap, ok := h.spawned[id]
	delete(h.spawned, id)
	h.mu.Unlock()
	if ok {
		cap.Close() //nolint:errcheck
	}
}
