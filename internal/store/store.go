// Package store loads and saves the task collection as a whole.
package store

import "github.com/nibzard/tasktracker/internal/task"

// Store persists the full task collection. Every Load reads the whole
// collection and every Save replaces it.
type Store interface {
	Load() (task.Collection, error)
	Save(c task.Collection) error
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*Memory)(nil)
)
