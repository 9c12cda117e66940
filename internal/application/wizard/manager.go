package wizard

import (
	"sync"
)

// Manager owns one State per wizard session. All state is in-memory and
// session-scoped; a server restart discards every in-progress application.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Snapshot returns a copy of the session's state, creating the defaults on
// first access. Copies keep readers free of the manager lock.
func (m *Manager) Snapshot(sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.locked(sessionID)
}

// Mutate runs fn against the session's state while holding the manager lock,
// so concurrent requests for the same session cannot interleave merges. It
// returns a copy of the resulting state.
func (m *Manager) Mutate(sessionID string, fn func(*State)) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.locked(sessionID)
	fn(state)
	return *state
}

// locked fetches or creates a session's state. Callers must hold mu.
func (m *Manager) locked(sessionID string) *State {
	state, ok := m.sessions[sessionID]
	if !ok {
		state = NewState()
		m.sessions[sessionID] = state
	}
	return state
}

// Drop removes a session's state entirely (after submission or reset).
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}
