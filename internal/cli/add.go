package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/taskcli/internal/tracker"
)

// AddResult is the output of the add command.
type AddResult struct {
	ID int64 `json:"id"`
}

func (r AddResult) String() string {
	return fmt.Sprintf("Task added successfully (ID: %d)", r.ID)
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description>",
		Short: "Add a task",
		Long: `Add a task with status todo and print its id.

Example:
  task-cli add "Buy groceries"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			tr, err := rootOpts.openTracker(f)
			if err != nil {
				return err
			}
			return addTask(tr, f, args[0])
		},
	}
}

func addTask(tr *tracker.Tracker, f *OutputFormatter, description string) error {
	id, err := tr.Add(description)
	if err != nil {
		return failTracker(f, err)
	}
	return f.Success(AddResult{ID: id})
}
