package store

import (
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"

	"github.com/roach88/taskcli/internal/task"
	"github.com/roach88/taskcli/internal/testutil"
)

const testPath = "data/tasks.json"

// quietLogger discards store diagnostics in tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestStore opens a store on an empty in-memory filesystem.
func createTestStore(t *testing.T) (*Store, afero.Fs, *testutil.StepClock) {
	t.Helper()
	fs := afero.NewMemMapFs()
	clock := testutil.NewStepClock()
	return openTestStore(t, fs, clock, testPath), fs, clock
}

func openTestStore(t *testing.T, fs afero.Fs, clock task.Clock, path string) *Store {
	t.Helper()
	return Open(path, WithFs(fs), WithClock(clock), WithLogger(quietLogger()))
}

// mustInsert inserts a new task with the given description.
func mustInsert(t *testing.T, s *Store, clock task.Clock, description string) task.Task {
	t.Helper()
	inserted, err := s.Insert(task.New(description, clock.Now()))
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", description, err)
	}
	return inserted
}
