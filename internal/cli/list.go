package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/taskcli/internal/task"
	"github.com/roach88/taskcli/internal/tracker"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [status]",
		Short: "List tasks, optionally only those with a status",
		Long: `List tasks in the order they are stored.

The optional status is one of todo, in-progress or done (case-insensitive).

Example:
  task-cli list
  task-cli list in-progress
  task-cli list done --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			tr, err := rootOpts.openTracker(f)
			if err != nil {
				return err
			}
			rawStatus := ""
			if len(args) == 1 {
				rawStatus = args[0]
			}
			return listTasks(tr, f, rawStatus)
		},
	}
}

func listTasks(tr *tracker.Tracker, f *OutputFormatter, rawStatus string) error {
	var summaries []tracker.Summary
	if rawStatus == "" {
		summaries = tr.ListAll()
	} else {
		status, err := task.ParseStatus(rawStatus)
		if err != nil {
			return fail(f, ExitCommandError, ErrCodeInvalidStatus, err.Error(), err)
		}
		summaries = tr.ListByStatus(status)
	}

	if f.Format == "json" {
		return f.Success(summaries)
	}
	return f.Success(TaskListing{Tasks: summaries, Now: tr.Now()})
}
