package task

import (
	"testing"
	"time"
)

func sample() Collection {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	c := Collection{
		New(1, "a", now),
		New(4, "b", now),
		New(2, "c", now),
	}
	c[1].Status = StatusDone
	c[2].Status = StatusInProgress
	return c
}

func TestFindIndex(t *testing.T) {
	c := sample()

	tests := []struct {
		id   int
		want int
	}{
		{1, 0},
		{4, 1},
		{2, 2},
		{3, -1},
		{0, -1},
	}
	for _, tt := range tests {
		if got := c.FindIndex(tt.id); got != tt.want {
			t.Errorf("FindIndex(%d): got %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestNextID(t *testing.T) {
	t.Run("empty collection starts at 1", func(t *testing.T) {
		if got := (Collection{}).NextID(); got != 1 {
			t.Errorf("NextID: got %d, want 1", got)
		}
	})

	t.Run("uses the highest id", func(t *testing.T) {
		if got := sample().NextID(); got != 5 {
			t.Errorf("NextID: got %d, want 5", got)
		}
	})
}

func TestRemovePreservesOrder(t *testing.T) {
	c := sample()
	out := c.Remove(1)

	if len(out) != 2 {
		t.Fatalf("len: got %d, want 2", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 2 {
		t.Errorf("order: got ids %d,%d, want 1,2", out[0].ID, out[1].ID)
	}
	if len(c) != 3 || c[1].ID != 4 {
		t.Error("Remove modified the receiver")
	}
}

func TestFilter(t *testing.T) {
	c := sample()

	tests := []struct {
		name   string
		status string
		want   []int
	}{
		{"no filter", "", []int{1, 4, 2}},
		{"todo", "todo", []int{1}},
		{"done", "done", []int{4}},
		{"in-progress", "in-progress", []int{2}},
		{"unknown status", "blocked", nil},
		{"case sensitive", "DONE", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.status)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q): got %d tasks, want %d", tt.status, len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("Filter(%q)[%d]: got id %d, want %d", tt.status, i, got[i].ID, id)
				}
			}
		})
	}
}

func TestCounts(t *testing.T) {
	counts := sample().Counts()
	for _, s := range Statuses() {
		if counts[s] != 1 {
			t.Errorf("Counts[%s]: got %d, want 1", s, counts[s])
		}
	}
}

func TestCloneAndEqual(t *testing.T) {
	c := sample()
	clone := c.Clone()
	if !clone.Equal(c) {
		t.Fatal("clone should equal original")
	}

	clone[0].Description = "changed"
	if c[0].Description == "changed" {
		t.Error("clone shares backing array with original")
	}
	if clone.Equal(c) {
		t.Error("collections with different descriptions reported equal")
	}

	if got := Collection(nil).Clone(); got == nil {
		t.Error("Clone of nil should be an empty, non-nil collection")
	}
}
