package task

import "time"

// Task is one unit of tracked work.
//
// The zero ID means the task has not been inserted into a store yet; a zero
// UpdatedAt means the task has never been changed since it was created.
type Task struct {
	ID          int64
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New builds a task with no id, status TODO, CreatedAt set to now and no
// UpdatedAt.
func New(description string, now time.Time) Task {
	return Task{
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   now,
	}
}

// HasID reports whether an id has been assigned.
func (t Task) HasID() bool {
	return t.ID != 0
}

// IsUpdated reports whether the task has been changed since creation.
func (t Task) IsUpdated() bool {
	return !t.UpdatedAt.IsZero()
}

// AssignID returns a copy of t carrying id.
//
// An id can be assigned exactly once. Calling AssignID on a task that already
// has one returns an invalid state error and the zero Task.
func (t Task) AssignID(id int64, now time.Time) (Task, error) {
	if t.HasID() {
		return Task{}, NewIDAlreadyAssignedError(t.ID)
	}
	t.ID = id
	t.UpdatedAt = now
	return t, nil
}

// WithDescription returns a copy of t with the description replaced.
func (t Task) WithDescription(description string, now time.Time) Task {
	t.Description = description
	t.UpdatedAt = now
	return t
}

// WithStatus returns a copy of t with the status replaced.
func (t Task) WithStatus(status Status, now time.Time) Task {
	t.Status = status
	t.UpdatedAt = now
	return t
}
