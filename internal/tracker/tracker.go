// Package tracker is the command-facing side of task-cli: it turns
// primitive command arguments into store operations and store results into
// displayable summaries.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/taskcli/internal/task"
)

var (
	ErrRepositoryNil    = errors.New("task repository is nil")
	ErrEmptyDescription = errors.New("task description is empty")
)

// Repository is the part of the store the tracker needs.
type Repository interface {
	Insert(t task.Task) (task.Task, error)
	GetAll() []task.Task
	UpdateDescriptionByID(id int64, description string) error
	UpdateStatusByID(id int64, status task.Status) error
	DeleteByID(id int64) error
}

// Summary is the displayable form of a task.
type Summary struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (s Summary) String() string {
	updated := "never"
	if s.UpdatedAt != nil {
		updated = s.UpdatedAt.Format(time.RFC3339)
	}
	return fmt.Sprintf("Task{id=%d, description='%s', status='%s', createdAt=%s, updatedAt=%s}",
		s.ID, s.Description, s.Status, s.CreatedAt.Format(time.RFC3339), updated)
}

// Summarize builds the displayable form of t.
func Summarize(t task.Task) Summary {
	s := Summary{
		ID:          t.ID,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
	if t.IsUpdated() {
		updated := t.UpdatedAt
		s.UpdatedAt = &updated
	}
	return s
}

// Tracker implements the task-cli commands on top of a Repository.
type Tracker struct {
	repo  Repository
	clock task.Clock
}

// New creates a Tracker. A nil clock means task.SystemClock.
func New(repo Repository, clock task.Clock) (*Tracker, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}
	if clock == nil {
		clock = task.SystemClock{}
	}
	return &Tracker{repo: repo, clock: clock}, nil
}

// Add creates a task and returns its id.
//
// The id is returned even when saving failed, since the task exists in
// memory; the error is a store PersistenceError in that case.
func (t *Tracker) Add(description string) (int64, error) {
	description, err := cleanDescription(description)
	if err != nil {
		return 0, err
	}
	inserted, err := t.repo.Insert(task.New(description, t.clock.Now()))
	return inserted.ID, err
}

// UpdateDescription replaces the description of task id. Unknown ids are
// ignored.
func (t *Tracker) UpdateDescription(id int64, description string) error {
	description, err := cleanDescription(description)
	if err != nil {
		return err
	}
	return t.repo.UpdateDescriptionByID(id, description)
}

// UpdateStatus sets the status of task id. Unknown ids are ignored.
func (t *Tracker) UpdateStatus(id int64, status task.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	return t.repo.UpdateStatusByID(id, status)
}

// Delete removes task id. Unknown ids are ignored.
func (t *Tracker) Delete(id int64) error {
	return t.repo.DeleteByID(id)
}

// ListAll returns every task in store order.
func (t *Tracker) ListAll() []Summary {
	tasks := t.repo.GetAll()
	summaries := make([]Summary, 0, len(tasks))
	for _, tk := range tasks {
		summaries = append(summaries, Summarize(tk))
	}
	return summaries
}

// ListByStatus returns the tasks with the given status in store order.
func (t *Tracker) ListByStatus(status task.Status) []Summary {
	summaries := make([]Summary, 0)
	for _, tk := range t.repo.GetAll() {
		if tk.Status == status {
			summaries = append(summaries, Summarize(tk))
		}
	}
	return summaries
}

// Now returns the tracker's current time, for rendering relative times.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// cleanDescription trims and NFC-normalizes a description so visually
// identical input is stored identically.
func cleanDescription(description string) (string, error) {
	description = norm.NFC.String(strings.TrimSpace(description))
	if description == "" {
		return "", ErrEmptyDescription
	}
	return description, nil
}
