package harness

import (
	"strings"

	"github.com/roach88/taskcli/internal/task"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every assertion held.
	Pass bool `json:"pass"`

	// Transcript is everything the shell printed, prompts included.
	Transcript string `json:"transcript"`

	// Log is the store's diagnostic output, without timestamps.
	Log string `json:"log,omitempty"`

	// File is the task file path the session used.
	File string `json:"file"`

	// Saved is the task file content after the session. Empty if no file
	// exists, see HasFile.
	Saved   string `json:"saved,omitempty"`
	HasFile bool   `json:"has_file"`

	// Tasks is the in-memory collection at the end of the session.
	Tasks []task.Task `json:"tasks"`

	// Reloaded is the collection read back from the saved file by a
	// fresh store.
	Reloaded []task.Task `json:"reloaded"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// FindTask returns the task with id from the final collection.
func (r *Result) FindTask(id int64) (task.Task, bool) {
	for _, t := range r.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// Snapshot renders the transcript and the saved file as one document, the
// form stored in golden files.
func (r *Result) Snapshot() []byte {
	var buf strings.Builder
	buf.WriteString("== transcript ==\n")
	buf.WriteString(r.Transcript)
	buf.WriteString("== " + r.File + " ==\n")
	if r.HasFile {
		buf.WriteString(r.Saved)
	} else {
		buf.WriteString("(no file)\n")
	}
	return []byte(buf.String())
}
