package registry

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/MiraOS/internal/shared/id"
	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// Entry is a tracked running process
type Entry struct {
	Name      string
	LaunchID  id.LaunchID
	Item      types.Item
	Strategy  string
	StartedAt time.Time
	Handle    types.ProcessHandle
}

// Info returns the read-only snapshot of the entry
func (e Entry) Info() types.ProcessInfo {
	info := types.ProcessInfo{
		Name:      e.Name,
		LaunchID:  e.LaunchID.String(),
		Path:      e.Item.Path,
		Strategy:  e.Strategy,
		StartedAt: e.StartedAt,
	}
	if e.Handle != nil {
		info.PID = e.Handle.PID()
		info.Exited = e.Handle.Exited()
	}
	return info
}

// Manager holds running process entries
type Manager struct {
	mu      sync.RWMutex
	entries map[string]Entry // Protected by mu
	order   []string         // Insertion order, protected by mu
}

// NewManager creates an empty registry
func NewManager() *Manager {
	return &Manager{
		entries: make(map[string]Entry),
	}
}

// Record stores e under e.Name and reports whether an existing entry was replaced
func (m *Manager) Record(e Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, replaced := m.entries[e.Name]
	if !replaced {
		m.order = append(m.order, e.Name)
	}
	m.entries[e.Name] = e
	return replaced
}

// Lookup returns a copy of the entry for name
func (m *Manager) Lookup(name string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]
	return e, ok
}

// Remove deletes the entry for name and reports whether one existed
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[name]; !ok {
		return false
	}
	delete(m.entries, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns a snapshot of all entries in insertion order
func (m *Manager) List() []types.ProcessInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]types.ProcessInfo, 0, len(m.order))
	for _, name := range m.order {
		infos = append(infos, m.entries[name].Info())
	}
	return infos
}

// Names returns the tracked names in insertion order
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.order...)
}

// Len returns the number of tracked entries
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
