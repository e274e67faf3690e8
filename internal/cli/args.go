package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/taskcli/internal/store"
	"github.com/roach88/taskcli/internal/task"
	"github.com/roach88/taskcli/internal/tracker"
)

// parseID converts a command argument to a task id. Ids are positive
// integers.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q: must be a positive integer", raw)
	}
	return id, nil
}

// failID reports a malformed id argument.
func failID(f *OutputFormatter, err error) error {
	return fail(f, ExitCommandError, ErrCodeInvalidID, err.Error(), err)
}

// failTracker maps tracker and store errors to CLI errors.
func failTracker(f *OutputFormatter, err error) error {
	switch {
	case errors.Is(err, tracker.ErrEmptyDescription):
		return fail(f, ExitCommandError, ErrCodeEmptyDescription, "task description must not be empty", err)
	case errors.Is(err, store.ErrIDsExhausted):
		return fail(f, ExitFailure, ErrCodeGeneric, "no task id left: the task file already holds the largest id", err)
	case store.IsPersistenceError(err):
		return fail(f, ExitFailure, ErrCodePersistence, "could not save tasks", err)
	case task.IsInvalidState(err):
		return fail(f, ExitFailure, ErrCodeGeneric, "task is in an invalid state", err)
	default:
		return fail(f, ExitFailure, ErrCodeGeneric, err.Error(), err)
	}
}
