package pane

import (
	"context"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Plugin is the MCP-backed Capability implementation: the plugin host
// collaborator (spec.md §2 row I) is addressed through an MCP client
// connection, and rendered frames arrive as tool-call results rather than
// PTY bytes.
type Plugin struct {
	mu     sync.Mutex
	client *client.Client
	path   string

	lastFrame string
	dirty     bool
	closed    bool
}

// NewPlugin starts (or attaches to) the plugin host process identified by
// path over stdio, and performs the MCP initialize handshake.
func NewPlugin(ctx context.Context, path string, args ...string) (*Plugin, error) {
	c, err := client.NewStdioMCPClient(path, nil, args...)
	if err != nil {
		return nil, err
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "zmux", Version: "0.1.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, err
	}

	return &Plugin{client: c, path: path}, nil
}

// Ingest delivers a host-side event (resize, input-forward, tick) to the
// plugin as an MCP tool call, matching spec.md's PluginUpdate(pid, event)
// outbound message.
func (p *Plugin) Ingest(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = "render"
	req.Params.Arguments = map[string]any{"event": string(data)}

	res, err := p.client.CallTool(ctx, req)
	if err != nil {
		return err
	}
	for _, c := range res.Content {
		if tc, ok := mcp.AsTextContent(c); ok {
			p.lastFrame = tc.Text
			p.dirty = true
		}
	}
	return nil
}

// TransformInput is the identity transform: plugin panes forward raw key
// events to the host unmodified, wrapped by Ingest on the caller side.
func (p *Plugin) TransformInput(data []byte) []byte { return data }

// CursorPosition: plugin panes do not report a text cursor.
func (p *Plugin) CursorPosition() (x, y int, ok bool) { return 0, 0, false }

// Resize notifies the plugin host of the new content area.
func (p *Plugin) Resize(cols, rows int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = "resize"
	req.Params.Arguments = map[string]any{"cols": cols, "rows": rows}
	_, err := p.client.CallTool(ctx, req)
	return err
}

// Render returns the most recent frame delivered by the plugin host.
func (p *Plugin) Render() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dirty {
		return "", false
	}
	p.dirty = false
	return p.lastFrame, true
}

// ScrollBy, StartSelection, UpdateSelection, EndSelection are no-ops for
// plugin panes: nothing is forwarded to the plugin host, and
// EndSelection always returns "".
func (p *Plugin) ScrollBy(lines int)         {}
func (p *Plugin) StartSelection(x, y int)    {}
func (p *Plugin) UpdateSelection(x, y int)   {}
func (p *Plugin) EndSelection() string       { return "" }

// Close tears down the MCP client connection.
func (p *Plugin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.client.Close()
}
