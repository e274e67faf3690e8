package store

import (
	"time"

	"github.com/roach88/taskcli/internal/task"
)

// record is the on-disk shape of a task. Absent id and updatedAt are written
// as null.
type record struct {
	ID          *int64      `json:"id" yaml:"id"`
	Description string      `json:"description" yaml:"description"`
	Status      task.Status `json:"status" yaml:"status"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   *time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

func toRecord(t task.Task) record {
	r := record{
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
	}
	if t.HasID() {
		id := t.ID
		r.ID = &id
	}
	if t.IsUpdated() {
		updated := t.UpdatedAt
		r.UpdatedAt = &updated
	}
	return r
}

func fromRecord(r record) task.Task {
	t := task.Task{
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if r.ID != nil {
		t.ID = *r.ID
	}
	if r.UpdatedAt != nil {
		t.UpdatedAt = r.UpdatedAt.UTC()
	}
	return t
}

// toRecords never returns nil so an empty collection encodes as [] rather
// than null.
func toRecords(tasks []task.Task) []record {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t))
	}
	return records
}

func fromRecords(records []record) []task.Task {
	tasks := make([]task.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, fromRecord(r))
	}
	return tasks
}
