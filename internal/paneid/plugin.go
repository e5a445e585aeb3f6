package paneid

import "github.com/google/uuid"

// NewPluginID allocates a fresh opaque plugin pane id. Used when the
// plugin host assigns an id lazily rather than the caller supplying one.
func NewPluginID() ID {
	return Plugin(uuid.NewString())
}
