package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/taskcli/internal/tracker"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a task",
		Long:          "Delete a task. Unknown ids are ignored.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			tr, err := rootOpts.openTracker(f)
			if err != nil {
				return err
			}
			return deleteTask(tr, f, args[0])
		},
	}
}

func deleteTask(tr *tracker.Tracker, f *OutputFormatter, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return failID(f, err)
	}
	if err := tr.Delete(id); err != nil {
		return failTracker(f, err)
	}
	return f.Success(nil)
}
