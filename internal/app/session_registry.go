package app

import "sync"

// SessionRegistry tracks which call sessions are currently live. The
// resolution path consults it to decide between live delivery (leave the
// record for the session's poller) and offline notification (the caller
// already hung up).
type SessionRegistry struct {
	mu     sync.RWMutex
	active map[string]struct{}
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{active: make(map[string]struct{})}
}

// Register marks a session as live.
func (r *SessionRegistry) Register(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[sessionID] = struct{}{}
}

// Unregister marks a session as ended.
func (r *SessionRegistry) Unregister(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, sessionID)
}

// IsActive reports whether a session is currently live.
func (r *SessionRegistry) IsActive(sessionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.active[sessionID]
	return ok
}
