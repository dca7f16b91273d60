package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the textual format of task timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus converts a user-supplied string to a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q, must be one of: todo, in-progress, done", s)
	}
	return status, nil
}

// Timestamp is a local wall-clock time with second precision.
type Timestamp struct {
	time.Time
	raw string // text that could not be parsed, written back unchanged
}

// fallbackLayouts are accepted when reading timestamps written by other tools.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NewTimestamp truncates t to whole seconds in the local time zone.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Local().Truncate(time.Second)}
}

// ParseTimestamp parses a timestamp in TimeLayout as local time. ISO-8601
// variants are accepted too and converted to TimeLayout precision.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err == nil {
		return Timestamp{Time: t}, nil
	}
	for _, layout := range fallbackLayouts {
		if alt, altErr := time.ParseInLocation(layout, s, time.Local); altErr == nil {
			return NewTimestamp(alt), nil
		}
	}
	return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", s, err)
}

// String formats the timestamp using TimeLayout. Unparsable input is
// returned as it was read.
func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ts.raw
	}
	return ts.Format(TimeLayout)
}

// Raw returns the original text of a timestamp that could not be parsed.
func (ts Timestamp) Raw() string {
	return ts.raw
}

// MarshalJSON encodes the timestamp as a TimeLayout string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON decodes a timestamp string. An empty string or null yields
// the zero value. Values that do not parse are kept verbatim instead of
// failing, so one odd field never makes the whole task file unreadable.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*ts = Timestamp{raw: string(data)}
		return nil
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		parsed = Timestamp{raw: s}
	}
	*ts = parsed
	return nil
}

// Task represents a single entry in the task file.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// New returns a todo task created at now.
func New(id int, description string, now time.Time) Task {
	ts := NewTimestamp(now)
	return Task{
		ID:          id,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// Touch refreshes UpdatedAt.
func (t *Task) Touch(now time.Time) {
	t.UpdatedAt = NewTimestamp(now)
}

// String renders the task as a single list line.
func (t Task) String() string {
	return fmt.Sprintf("[%d] %s - %s (Updated: %s)", t.ID, t.Description, t.Status, t.UpdatedAt)
}

// Equal reports whether two tasks match field for field.
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID &&
		t.Description == other.Description &&
		t.Status == other.Status &&
		t.CreatedAt.Equal(other.CreatedAt.Time) &&
		t.CreatedAt.raw == other.CreatedAt.raw &&
		t.UpdatedAt.Equal(other.UpdatedAt.Time) &&
		t.UpdatedAt.raw == other.UpdatedAt.raw
}
