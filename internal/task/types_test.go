package task

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"todo", StatusTodo, false},
		{"in-progress", StatusInProgress, false},
		{"done", StatusDone, false},
		{" DONE ", StatusDone, false},
		{"doing", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewTask(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 999, time.Local)
	task := New(3, "buy milk", now)

	if task.Status != StatusTodo {
		t.Errorf("Status: got %q, want todo", task.Status)
	}
	if task.CreatedAt.String() != "2024-03-09 14:05:07" {
		t.Errorf("CreatedAt: got %q", task.CreatedAt)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt.Time) {
		t.Errorf("CreatedAt and UpdatedAt differ: %s vs %s", task.CreatedAt, task.UpdatedAt)
	}
}

func TestTaskString(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	task := New(1, "buy milk", now)

	want := "[1] buy milk - todo (Updated: 2024-01-02 03:04:05)"
	if got := task.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}

func TestTaskJSON(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	task := New(7, "write report", now)
	task.Status = StatusInProgress

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	for _, key := range []string{`"id":7`, `"description":"write report"`, `"status":"in-progress"`, `"createdAt":"2024-01-02 03:04:05"`, `"updatedAt":"2024-01-02 03:04:05"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("encoded task missing %s: %s", key, data)
		}
	}

	var decoded Task
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Equal(task) {
		t.Errorf("decoded task %+v does not match %+v", decoded, task)
	}
}

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
		raw  string
	}{
		{"layout", `"2024-01-02 03:04:05"`, "2024-01-02 03:04:05", ""},
		{"iso local", `"2024-01-02T03:04:05"`, "2024-01-02 03:04:05", ""},
		{"iso fraction", `"2024-01-02T03:04:05.987"`, "2024-01-02 03:04:05", ""},
		{"date only", `"2024-01-02"`, "2024-01-02 00:00:00", ""},
		{"empty", `""`, "", ""},
		{"null", `null`, "", ""},
		{"unparsable text", `"yesterday"`, "yesterday", "yesterday"},
		{"number", `1704164645`, "1704164645", "1704164645"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.json), &ts); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.json, err)
			}
			if ts.String() != tt.want {
				t.Errorf("String() = %q, want %q", ts.String(), tt.want)
			}
			if ts.Raw() != tt.raw {
				t.Errorf("Raw() = %q, want %q", ts.Raw(), tt.raw)
			}
		})
	}
}

func TestTimestampRFC3339ConvertsToLocal(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-01-02T03:04:05Z"`), &ts); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Local().Format(TimeLayout)
	if ts.String() != want {
		t.Errorf("got %s, want %s", ts, want)
	}
}

func TestTimestampKeepsUnparsableText(t *testing.T) {
	in := `{"id":1,"description":"a","status":"todo","createdAt":"last tuesday","updatedAt":"2024-01-02 03:04:05"}`

	var decoded Task
	if err := json.Unmarshal([]byte(in), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"createdAt":"last tuesday"`) {
		t.Errorf("unparsable timestamp not written back: %s", out)
	}

	decoded.Touch(time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local))
	if decoded.UpdatedAt.Raw() != "" {
		t.Errorf("Touch should replace the timestamp, got raw %q", decoded.UpdatedAt.Raw())
	}
}

func TestTouch(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	task := New(1, "a", created)

	later := created.Add(90 * time.Second)
	task.Touch(later)

	if task.UpdatedAt.String() != "2024-01-01 00:01:30" {
		t.Errorf("UpdatedAt: got %s", task.UpdatedAt)
	}
	if task.CreatedAt.String() != "2024-01-01 00:00:00" {
		t.Errorf("CreatedAt changed: got %s", task.CreatedAt)
	}
}
