package task

// Collection is the ordered set of tasks stored in the task file.
type Collection []Task

// FindIndex returns the position of the task with the given id, or -1.
func (c Collection) FindIndex(id int) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a pointer to the task with the given id, or nil if not found.
func (c Collection) Get(id int) *Task {
	if i := c.FindIndex(id); i >= 0 {
		return &c[i]
	}
	return nil
}

// NextID returns the id for the next task: one past the highest id, or 1 when empty.
func (c Collection) NextID() int {
	max := 0
	for i := range c {
		if c[i].ID > max {
			max = c[i].ID
		}
	}
	return max + 1
}

// Remove deletes the task at index i, keeping the order of the rest.
func (c Collection) Remove(i int) Collection {
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...)
}

// Filter returns the tasks whose status equals status exactly, in order.
// An empty status returns every task.
func (c Collection) Filter(status string) Collection {
	out := make(Collection, 0, len(c))
	for _, t := range c {
		if status == "" || string(t.Status) == status {
			out = append(out, t)
		}
	}
	return out
}

// Counts tallies tasks per status.
func (c Collection) Counts() map[Status]int {
	counts := make(map[Status]int, len(Statuses()))
	for _, s := range Statuses() {
		counts[s] = 0
	}
	for _, t := range c {
		counts[t.Status]++
	}
	return counts
}

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Equal reports whether both collections hold equal tasks in the same order.
func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
