package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/taskcli/internal/task"
)

// DefaultFile is the task file path used when a scenario names none.
const DefaultFile = "tasks.json"

// Scenario defines a shell session to replay against a fresh task file.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// File is the task file path inside the scenario's filesystem.
	// The extension selects the codec. Defaults to DefaultFile.
	File string `yaml:"file,omitempty"`

	// Seed is written to File before the session starts. If nil, the
	// session starts without a task file.
	Seed *string `yaml:"seed,omitempty"`

	// Format is the shell output format ("text" or "json"). Defaults to text.
	Format string `yaml:"format,omitempty"`

	// Lines are fed to the shell one per line. A session without an
	// "exit" line ends at end of input.
	Lines []string `yaml:"lines"`

	// Assertions validate the final tasks, the transcript and the log.
	// Supported types: task_count, task, output_contains, log_contains,
	// reload_matches
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a finished session.
type Assertion struct {
	// Type specifies the assertion type:
	// - "task_count": the store holds exactly Count tasks
	// - "task": task ID exists (or not, with Absent) with Status/Description
	// - "output_contains": the transcript contains Text
	// - "log_contains": the diagnostic log contains Text
	// - "reload_matches": reopening the file yields the in-memory tasks
	Type string `yaml:"type"`

	// Count is the expected number of tasks (task_count).
	Count int `yaml:"count,omitempty"`

	// ID selects the task (task).
	ID int64 `yaml:"id,omitempty"`

	// Absent asserts that no task has ID (task).
	Absent bool `yaml:"absent,omitempty"`

	// Status is the expected status name (task). Empty means any.
	Status string `yaml:"status,omitempty"`

	// Description is the expected description (task). Empty means any.
	Description string `yaml:"description,omitempty"`

	// Text is the expected substring (output_contains, log_contains).
	Text string `yaml:"text,omitempty"`
}

// Assertion type constants.
const (
	AssertTaskCount      = "task_count"
	AssertTask           = "task"
	AssertOutputContains = "output_contains"
	AssertLogContains    = "log_contains"
	AssertReloadMatches  = "reload_matches"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml scenario in dir, ordered by file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	names := make(map[string]string, len(paths))
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if other, ok := names[scenario.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s",
				filepath.Base(path), scenario.Name, filepath.Base(other))
		}
		names[scenario.Name] = path
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if strings.ContainsAny(s.Name, `/\ `) {
		return fmt.Errorf("name %q must not contain path separators or spaces", s.Name)
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Format != "" && s.Format != "text" && s.Format != "json" {
		return fmt.Errorf("format %q must be text or json", s.Format)
	}

	if len(s.Lines) == 0 {
		return fmt.Errorf("lines list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTaskCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for task_count", index)
		}
	case AssertTask:
		if a.ID <= 0 {
			return fmt.Errorf("assertions[%d]: positive id is required for task", index)
		}
		if a.Status != "" && !task.Status(a.Status).Valid() {
			return fmt.Errorf("assertions[%d]: unknown status %q", index, a.Status)
		}
		if a.Absent && (a.Status != "" || a.Description != "") {
			return fmt.Errorf("assertions[%d]: absent task cannot have status or description", index)
		}
	case AssertOutputContains, AssertLogContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertReloadMatches:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
