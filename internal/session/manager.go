// Package session keeps one isolated workspace per browser session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"eantienda/app"
	"eantienda/domain/inventory"
	"eantienda/internal"
)

// Workspace is the state one user works on: the inventory table and the
// unique code book.
type Workspace struct {
	ID        string
	Inventory *inventory.Table
	Codes     *app.CodeBook

	mu       sync.Mutex
	lastSeen time.Time
}

// Do runs fn while holding the workspace lock, so actions of one session run one at a time.
func (w *Workspace) Do(fn func(*Workspace) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(w)
}

func newWorkspace(id string, now time.Time) *Workspace {
	return &Workspace{
		ID:        id,
		Inventory: inventory.NewTable(),
		Codes:     app.NewCodeBook(),
		lastSeen:  now,
	}
}

// Manager maps session ids to workspaces and evicts idle ones
type Manager struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	ttl        time.Duration
	now        func() time.Time
	logger     *internal.Logger
}

// NewManager creates a manager that forgets workspaces idle for longer than ttl
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		workspaces: make(map[string]*Workspace),
		ttl:        ttl,
		now:        time.Now,
		logger:     internal.DefaultLogger.WithComponent("SessionManager"),
	}
}

// WithClock replaces the clock used for expiry
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Acquire returns the workspace for id, creating a fresh one under a new id
// when id is unknown, malformed or expired. The returned bool is true when a
// new workspace was created.
func (m *Manager) Acquire(id string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictLocked(now)

	if _, err := uuid.Parse(id); err == nil {
		if ws, ok := m.workspaces[id]; ok {
			ws.lastSeen = now
			return ws, false
		}
	}

	ws := newWorkspace(uuid.New().String(), now)
	m.workspaces[ws.ID] = ws
	m.logger.Debug("Created workspace %s (%d active)", ws.ID, len(m.workspaces))
	return ws, true
}

// Get returns the workspace for id without creating one
func (m *Manager) Get(id string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked(m.now())
	ws, ok := m.workspaces[id]
	return ws, ok
}

// Len returns the number of live workspaces
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}

func (m *Manager) evictLocked(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, ws := range m.workspaces {
		if now.Sub(ws.lastSeen) > m.ttl {
			delete(m.workspaces, id)
			m.logger.Debug("Evicted idle workspace %s", id)
		}
	}
}
