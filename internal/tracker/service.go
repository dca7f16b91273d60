// Package tracker implements the task operations on top of a Store.
//
// Every mutating operation loads the whole collection, changes it in memory
// and saves it back before returning. Argument problems are detected before
// the store is touched.
package tracker

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktracker/internal/logging"
	"github.com/nibzard/tasktracker/internal/store"
	"github.com/nibzard/tasktracker/internal/task"
)

// Service runs task operations against a Store.
type Service struct {
	store  store.Store
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for operation diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Service over st.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseID converts a textual id argument to an integer.
func ParseID(op, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, &Error{Kind: KindInvalidID, Op: op, Arg: arg, Err: err}
	}
	return id, nil
}

// Add creates a todo task and returns it.
func (s *Service) Add(description string) (task.Task, error) {
	const op = "add"
	if strings.TrimSpace(description) == "" {
		return task.Task{}, &Error{Kind: KindMissingArgument, Op: op}
	}

	c, err := s.load(op)
	if err != nil {
		return task.Task{}, err
	}

	t := task.New(c.NextID(), description, s.now())
	c = append(c, t)

	if err := s.save(op, c); err != nil {
		return task.Task{}, err
	}
	s.logger.Debug("task added", "id", t.ID)
	return t, nil
}

// Update replaces the description of task id.
func (s *Service) Update(id int, description string) (task.Task, error) {
	const op = "update"
	if strings.TrimSpace(description) == "" {
		return task.Task{}, &Error{Kind: KindMissingArgument, Op: op}
	}

	return s.mutate(op, id, func(t *task.Task) {
		t.Description = description
	})
}

// Delete removes task id and returns the removed task.
func (s *Service) Delete(id int) (task.Task, error) {
	const op = "delete"
	c, err := s.load(op)
	if err != nil {
		return task.Task{}, err
	}

	i := c.FindIndex(id)
	if i < 0 {
		return task.Task{}, &Error{Kind: KindNotFound, Op: op, ID: id}
	}
	removed := c[i]
	c = c.Remove(i)

	if err := s.save(op, c); err != nil {
		return task.Task{}, err
	}
	s.logger.Debug("task deleted", "id", id)
	return removed, nil
}

// SetStatus moves task id to status. Setting the current status again is
// allowed and still refreshes the update time.
func (s *Service) SetStatus(id int, status task.Status) (task.Task, error) {
	const op = "set-status"
	if !status.Valid() {
		return task.Task{}, &Error{Kind: KindInvalidStatus, Op: op, Arg: string(status)}
	}

	return s.mutate(op, id, func(t *task.Task) {
		t.Status = status
	})
}

// List returns the tasks whose status equals filter, or all tasks when
// filter is empty. Unknown filters yield an empty result.
func (s *Service) List(filter string) (task.Collection, error) {
	c, err := s.load("list")
	if err != nil {
		return nil, err
	}
	return c.Filter(filter), nil
}

func (s *Service) mutate(op string, id int, apply func(*task.Task)) (task.Task, error) {
	c, err := s.load(op)
	if err != nil {
		return task.Task{}, err
	}

	t := c.Get(id)
	if t == nil {
		return task.Task{}, &Error{Kind: KindNotFound, Op: op, ID: id}
	}
	apply(t)
	t.Touch(s.now())
	updated := *t

	if err := s.save(op, c); err != nil {
		return task.Task{}, err
	}
	s.logger.Debug("task updated", "op", op, "id", id, "status", updated.Status)
	return updated, nil
}

func (s *Service) load(op string) (task.Collection, error) {
	c, err := s.store.Load()
	if err != nil {
		return nil, &Error{Kind: KindStorage, Op: op, Err: err}
	}
	return c, nil
}

func (s *Service) save(op string, c task.Collection) error {
	if err := s.store.Save(c); err != nil {
		return &Error{Kind: KindStorage, Op: op, Err: err}
	}
	return nil
}
