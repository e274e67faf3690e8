package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/taskcli/internal/task"
	"github.com/roach88/taskcli/internal/tracker"
)

// NewMarkCommand creates a command that sets a task to status.
// Any status can be set regardless of the current one.
func NewMarkCommand(rootOpts *RootOptions, name string, status task.Status) *cobra.Command {
	return &cobra.Command{
		Use:           name + " <id>",
		Short:         fmt.Sprintf("Set the status of a task to %s", status),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			tr, err := rootOpts.openTracker(f)
			if err != nil {
				return err
			}
			return markTask(tr, f, args[0], status)
		},
	}
}

func markTask(tr *tracker.Tracker, f *OutputFormatter, rawID string, status task.Status) error {
	id, err := parseID(rawID)
	if err != nil {
		return failID(f, err)
	}
	if err := tr.UpdateStatus(id, status); err != nil {
		return failTracker(f, err)
	}
	return f.Success(nil)
}
