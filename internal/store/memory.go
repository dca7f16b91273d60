package store

import (
	"sync"

	"github.com/nibzard/tasktracker/internal/task"
)

// Memory is an in-process Store. Load and Save copy the collection so callers
// never share state with the store, matching the file store's semantics.
type Memory struct {
	mu    sync.Mutex
	tasks task.Collection
	saves int

	// LoadErr and SaveErr, when set, are returned instead of touching the data.
	LoadErr error
	SaveErr error
}

// NewMemory creates a memory store holding the given tasks.
func NewMemory(tasks ...task.Task) *Memory {
	return &Memory{tasks: task.Collection(tasks).Clone()}
}

// Load returns a copy of the stored collection.
func (m *Memory) Load() (task.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.tasks.Clone(), nil
}

// Save replaces the stored collection with a copy of c.
func (m *Memory) Save(c task.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.tasks = c.Clone()
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
