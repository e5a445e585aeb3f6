// Package panetest provides a minimal in-memory pane.Capability used by
// internal/pane, internal/partition, and internal/tab tests so geometry
// and dispatch logic can be exercised without a real PTY or MCP host.
package panetest

import "sync"

// Fake is a no-op pane.Capability that records calls for assertions.
type Fake struct {
	mu sync.Mutex

	Cols, Rows   int
	Resizes      int
	Closed       bool
	Ingested     [][]byte
	ScrollCalls  []int
	CursorX      int
	CursorY      int
	HasCursor    bool
	RenderOutput string
	RenderDirty  bool

	// SelectionText is returned by EndSelection, letting tests drive the
	// mouse-release-copies-to-clipboard path.
	SelectionText string
}

// NewFake returns a ready-to-use Fake.
func NewFake() *Fake { return &Fake{} }

func (f *Fake) Ingest(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	f.Ingested = append(f.Ingested, cp)
	return nil
}

func (f *Fake) TransformInput(data []byte) []byte { return data }

func (f *Fake) CursorPosition() (x, y int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CursorX, f.CursorY, f.HasCursor
}

func (f *Fake) Resize(cols, rows int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cols, f.Rows = cols, rows
	f.Resizes++
	return nil
}

func (f *Fake) Render() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.RenderDirty {
		return "", false
	}
	f.RenderDirty = false
	return f.RenderOutput, true
}

func (f *Fake) ScrollBy(lines int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScrollCalls = append(f.ScrollCalls, lines)
}

func (f *Fake) StartSelection(x, y int)  {}
func (f *Fake) UpdateSelection(x, y int) {}

func (f *Fake) EndSelection() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SelectionText
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
