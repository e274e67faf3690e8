package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/taskcli/internal/tracker"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <description>",
		Short: "Change the description of a task",
		Long: `Change the description of a task. Unknown ids are ignored.

Example:
  task-cli update 1 "Buy groceries and cook dinner"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			tr, err := rootOpts.openTracker(f)
			if err != nil {
				return err
			}
			return updateTask(tr, f, args[0], args[1])
		},
	}
}

func updateTask(tr *tracker.Tracker, f *OutputFormatter, rawID, description string) error {
	id, err := parseID(rawID)
	if err != nil {
		return failID(f, err)
	}
	if err := tr.UpdateDescription(id, description); err != nil {
		return failTracker(f, err)
	}
	return f.Success(nil)
}
