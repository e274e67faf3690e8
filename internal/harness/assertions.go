package harness

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/taskcli/internal/tracker"
)

// AssertionError is returned when an assertion fails.
// It includes the transcript to help debug the failure.
type AssertionError struct {
	Type       string // Assertion type for categorization
	Expected   string // Human-readable expected outcome
	Actual     string // Human-readable actual outcome
	Transcript string // Full shell output for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Transcript != "" {
		fmt.Fprintf(&buf, "\nTranscript:\n")
		for _, line := range strings.Split(strings.TrimRight(e.Transcript, "\n"), "\n") {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}

	return buf.String()
}

func assertTaskCount(result *Result, assertion Assertion) error {
	if len(result.Tasks) == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:       AssertTaskCount,
		Expected:   fmt.Sprintf("%d tasks", assertion.Count),
		Actual:     fmt.Sprintf("%d tasks", len(result.Tasks)),
		Transcript: result.Transcript,
	}
}

func assertTask(result *Result, assertion Assertion) error {
	t, ok := result.FindTask(assertion.ID)

	if assertion.Absent {
		if !ok {
			return nil
		}
		return &AssertionError{
			Type:       AssertTask,
			Expected:   fmt.Sprintf("no task with id %d", assertion.ID),
			Actual:     "found " + tracker.Summarize(t).String(),
			Transcript: result.Transcript,
		}
	}

	if !ok {
		return &AssertionError{
			Type:       AssertTask,
			Expected:   fmt.Sprintf("task with id %d", assertion.ID),
			Actual:     "no such task",
			Transcript: result.Transcript,
		}
	}

	if assertion.Status != "" && string(t.Status) != assertion.Status {
		return &AssertionError{
			Type:       AssertTask,
			Expected:   fmt.Sprintf("task %d has status %s", assertion.ID, assertion.Status),
			Actual:     tracker.Summarize(t).String(),
			Transcript: result.Transcript,
		}
	}

	if assertion.Description != "" && t.Description != assertion.Description {
		return &AssertionError{
			Type:       AssertTask,
			Expected:   fmt.Sprintf("task %d has description %q", assertion.ID, assertion.Description),
			Actual:     tracker.Summarize(t).String(),
			Transcript: result.Transcript,
		}
	}

	return nil
}

func assertContains(kind, haystack string, assertion Assertion, transcript string) error {
	if strings.Contains(haystack, assertion.Text) {
		return nil
	}
	return &AssertionError{
		Type:       assertion.Type,
		Expected:   fmt.Sprintf("%s containing %q", kind, assertion.Text),
		Actual:     fmt.Sprintf("%q", haystack),
		Transcript: transcript,
	}
}

func assertReloadMatches(result *Result) error {
	if reflect.DeepEqual(result.Tasks, result.Reloaded) {
		return nil
	}
	return &AssertionError{
		Type:       AssertReloadMatches,
		Expected:   fmt.Sprintf("%v", result.Tasks),
		Actual:     fmt.Sprintf("%v", result.Reloaded),
		Transcript: result.Transcript,
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTaskCount:
			err = assertTaskCount(result, assertion)
		case AssertTask:
			err = assertTask(result, assertion)
		case AssertOutputContains:
			err = assertContains("transcript", result.Transcript, assertion, "")
		case AssertLogContains:
			err = assertContains("log", result.Log, assertion, result.Transcript)
		case AssertReloadMatches:
			err = assertReloadMatches(result)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
