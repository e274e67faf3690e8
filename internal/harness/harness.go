package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/roach88/taskcli/internal/cli"
	"github.com/roach88/taskcli/internal/store"
	"github.com/roach88/taskcli/internal/testutil"
	"github.com/roach88/taskcli/internal/tracker"
)

// Harness is the scenario execution environment: an in-memory filesystem,
// a step clock and a shell wired to one store.
type Harness struct {
	fs     afero.Fs
	clock  *testutil.StepClock
	path   string
	format string
	logs   *bytes.Buffer
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory filesystem and a step clock
// starting at testutil.DefaultEpoch, so transcripts and saved files are
// reproducible.
//
// Execution flow:
// 1. Write the seed file, if any
// 2. Open the store and feed the lines to the shell
// 3. Capture the transcript, the saved file and a fresh reload
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	h := newHarness(scenario)

	if scenario.Seed != nil {
		if err := h.seed(*scenario.Seed); err != nil {
			return nil, fmt.Errorf("failed to write seed file: %w", err)
		}
	}

	result := NewResult()
	result.File = h.path

	st := store.Open(h.path,
		store.WithFs(h.fs),
		store.WithClock(h.clock),
		store.WithLogger(h.logger),
	)
	tr, err := tracker.New(st, h.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker: %w", err)
	}

	var out bytes.Buffer
	sh := &cli.Shell{
		Tracker: tr,
		Formatter: &cli.OutputFormatter{
			Format:    h.format,
			Writer:    &out,
			ErrWriter: io.Discard,
		},
		In: strings.NewReader(strings.Join(scenario.Lines, "\n") + "\n"),
	}
	if err := sh.Run(); err != nil {
		return nil, fmt.Errorf("failed to run session: %w", err)
	}

	result.Transcript = out.String()
	result.Tasks = st.GetAll()
	result.Log = h.logs.String()

	if err := h.capture(result); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func newHarness(scenario *Scenario) *Harness {
	path := scenario.File
	if path == "" {
		path = DefaultFile
	}
	format := scenario.Format
	if format == "" {
		format = "text"
	}

	logs := &bytes.Buffer{}
	handler := slog.NewTextHandler(logs, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: dropTime,
	})

	return &Harness{
		fs:     afero.NewMemMapFs(),
		clock:  testutil.NewStepClock(),
		path:   path,
		format: format,
		logs:   logs,
		logger: slog.New(handler),
	}
}

func (h *Harness) seed(content string) error {
	if err := h.fs.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(h.fs, h.path, []byte(content), 0o644)
}

// capture records the saved file and reads it back with a fresh store.
func (h *Harness) capture(result *Result) error {
	data, err := afero.ReadFile(h.fs, h.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read task file: %w", err)
	default:
		result.Saved = string(data)
		result.HasFile = true
	}

	reloaded := store.Open(h.path,
		store.WithFs(h.fs),
		store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	result.Reloaded = reloaded.GetAll()
	return nil
}

// dropTime removes the timestamp from log records.
func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
