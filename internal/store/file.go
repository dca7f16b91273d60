package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktracker/internal/logging"
	"github.com/nibzard/tasktracker/internal/task"
)

// FileStore keeps the collection in a single JSON file.
type FileStore struct {
	path   string
	logger *log.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:   path,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the task file. A missing file, or one that is not a JSON array
// at all, yields an empty collection and no error. A well-formed array whose
// values have the wrong types is an error, so that saving cannot overwrite
// tasks that merely failed to decode.
func (s *FileStore) Load() (task.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("task file missing, starting empty", "path", s.path)
			return task.Collection{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	var c task.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		if !isCorrupt(err) {
			return nil, fmt.Errorf("read task file: %w (run 'tasktracker check' for details)", err)
		}
		s.logger.Debug("task file unparsable, starting empty", "path", s.path, "err", err)
		return task.Collection{}, nil
	}
	if c == nil {
		c = task.Collection{}
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(c))
	return c, nil
}

// Save writes the collection with 2-space indentation, replacing the file
// through a temporary file in the same directory.
func (s *FileStore) Save(c task.Collection) error {
	data, err := json.MarshalIndent(c.Clone(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Chmod(tmpPath, s.fileMode()); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(c))
	return nil
}

// fileMode returns the permissions of the existing task file, or 0644 for a
// new one.
func (s *FileStore) fileMode() fs.FileMode {
	if info, err := os.Stat(s.path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0644
}

// isCorrupt reports whether a decode error means the file is not a task
// array at all, as opposed to an array with some values of the wrong type.
func isCorrupt(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// Field is empty when the top-level value or an element is not
		// shaped like a task.
		return typeErr.Field == ""
	}
	return false
}
