package realtime

import (
	"log/slog"
	"sync"
)

// Registry maps each principal to its single live client. Admitting a second
// connection for the same principal replaces and closes the first: the newest
// connection always wins.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *slog.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Admit registers the client as the principal's live connection. Any
// previously registered client is closed after the swap; the close happens
// outside the lock so a slow teardown never stalls other admissions.
func (r *Registry) Admit(principalID string, c *Client) {
	r.mu.Lock()
	old := r.clients[principalID]
	r.clients[principalID] = c
	r.mu.Unlock()

	if old != nil && old != c {
		r.logger.Debug("superseding live connection", "principal_id", principalID)
		old.Close()
	}
}

// Remove unregisters the client, but only if it is still the one mapped to
// the principal. A disconnect racing a reconnect must not evict the
// successor connection.
func (r *Registry) Remove(principalID string, c *Client) {
	r.mu.Lock()
	if r.clients[principalID] == c {
		delete(r.clients, principalID)
	}
	r.mu.Unlock()
}

// Lookup returns the principal's live client, if any.
func (r *Registry) Lookup(principalID string) (*Client, bool) {
	r.mu.RLock()
	c, ok := r.clients[principalID]
	r.mu.RUnlock()
	return c, ok
}

// ForEach calls fn for every live client. It iterates a snapshot taken under
// the read lock, so fn runs lock-free and concurrent admits or removals never
// race the iteration.
func (r *Registry) ForEach(fn func(principalID string, c *Client)) {
	r.mu.RLock()
	snapshot := make(map[string]*Client, len(r.clients))
	for id, c := range r.clients {
		snapshot[id] = c
	}
	r.mu.RUnlock()

	for id, c := range snapshot {
		fn(id, c)
	}
}

// Len reports the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
