package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTaskFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "task.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task.json")
	if err := NewFileStore(path).Save(sampleTasks()); err != nil {
		t.Fatal(err)
	}

	result, err := Check(path)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid file, got errors: %v", result.Errors)
	}
	if result.Tasks != 3 {
		t.Errorf("Tasks: got %d, want 3", result.Tasks)
	}
}

func TestCheckMissingFile(t *testing.T) {
	result, err := Check(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Valid {
		t.Error("missing file should be valid")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "not found") {
		t.Errorf("expected not-found warning, got %v", result.Warnings)
	}
}

func TestCheckInvalidFiles(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantPath string
	}{
		{
			name:     "malformed json",
			content:  `[{"id": 1`,
			wantPath: "parse task file",
		},
		{
			name:     "not an array",
			content:  `{"tasks": []}`,
			wantPath: "",
		},
		{
			name:     "unknown status",
			content:  `[{"id":1,"description":"a","status":"blocked","createdAt":"2024-01-01 00:00:00","updatedAt":"2024-01-01 00:00:00"}]`,
			wantPath: "[0].status",
		},
		{
			name:     "string id",
			content:  `[{"id":"1","description":"a","status":"todo","createdAt":"2024-01-01 00:00:00","updatedAt":"2024-01-01 00:00:00"}]`,
			wantPath: "[0].id",
		},
		{
			name:     "bad timestamp",
			content:  `[{"id":1,"description":"a","status":"todo","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01 00:00:00"}]`,
			wantPath: "[0].createdAt",
		},
		{
			name:     "missing description",
			content:  `[{"id":1,"status":"todo","createdAt":"2024-01-01 00:00:00","updatedAt":"2024-01-01 00:00:00"}]`,
			wantPath: "[0]",
		},
		{
			name: "duplicate ids",
			content: `[
  {"id":1,"description":"a","status":"todo","createdAt":"2024-01-01 00:00:00","updatedAt":"2024-01-01 00:00:00"},
  {"id":1,"description":"b","status":"todo","createdAt":"2024-01-01 00:00:00","updatedAt":"2024-01-01 00:00:00"}
]`,
			wantPath: "[1].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Check(writeTaskFile(t, tt.content))
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			if len(result.Errors) == 0 {
				t.Fatal("expected at least one error")
			}
			found := false
			for _, e := range result.Errors {
				if strings.Contains(e.Error(), tt.wantPath) {
					found = true
				}
			}
			if !found {
				t.Errorf("no error mentions %q: %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestSchemaEmbedded(t *testing.T) {
	if !strings.Contains(Schema(), `"in-progress"`) {
		t.Error("embedded schema does not list in-progress status")
	}
	if _, err := compileSchema(); err != nil {
		t.Fatalf("compileSchema: %v", err)
	}
}
