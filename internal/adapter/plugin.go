package adapter

import (
	"context"

	"github.com/zmux-dev/zmux/internal/pane"
)

// PluginHost spawns plugin panes over the MCP client transport
// (internal/pane/plugin.go).
type PluginHost struct{}

// NewPluginHost returns a ready-to-use PluginHost.
func NewPluginHost() *PluginHost { return &PluginHost{} }

// Spawn starts (or attaches to) the plugin process at path and performs
// the MCP initialize handshake.
func (PluginHost) Spawn(ctx context.Context, path string, args ...string) (pane.Capability, error) {
	return pane.NewPlugin(ctx, path, args...)
}
