package task

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Status is the lifecycle label of a Task.
//
// Any status may follow any other; the store does not enforce
// TODO -> IN_PROGRESS -> DONE.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

var fold = cases.Fold()

// ParseStatus converts user input such as "in-progress", "Done" or
// "IN_PROGRESS" to a Status. Matching ignores case and treats '-' and '_'
// as the same separator.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), "-", "_")
	for _, known := range Statuses {
		if fold.String(normalized) == fold.String(string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status %q: must be one of todo, in-progress, done", s)
}
