package tracker

import (
	"errors"
	"fmt"
)

// Kind classifies operation failures so callers can pick a message without
// inspecting error strings.
type Kind int

const (
	// KindMissingArgument means a required argument was absent or empty.
	KindMissingArgument Kind = iota + 1
	// KindNotFound means no task has the requested id.
	KindNotFound
	// KindInvalidID means the id argument is not an integer.
	KindInvalidID
	// KindInvalidStatus means a status outside todo, in-progress, done was requested.
	KindInvalidStatus
	// KindStorage means the task file could not be read or written.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindMissingArgument:
		return "missing argument"
	case KindNotFound:
		return "not found"
	case KindInvalidID:
		return "invalid id"
	case KindInvalidStatus:
		return "invalid status"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is returned by every Service operation.
type Error struct {
	Kind Kind
	Op   string // operation name, e.g. "add"
	ID   int    // task id, for KindNotFound
	Arg  string // offending argument, for KindInvalidID and KindInvalidStatus
	Err  error  // underlying cause, if any
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s: task %d not found", e.Op, e.ID)
	case KindInvalidID:
		return fmt.Sprintf("%s: invalid task id %q", e.Op, e.Arg)
	case KindInvalidStatus:
		return fmt.Sprintf("%s: invalid status %q", e.Op, e.Arg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
