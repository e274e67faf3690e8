package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/taskcli/internal/task"
	"github.com/roach88/taskcli/internal/tracker"
)

// linePattern is the shell grammar:
//
//	[task-cli] <action> [<id>|<status>] ["<description>"]
var linePattern = regexp.MustCompile(`^(?:task-cli\s+)?([\w-]+)(?:\s+([\w-]+))?(?:\s+"([^"]*)")?$`)

// Line is one parsed shell line.
type Line struct {
	Action         string
	Arg            string // id or status
	Description    string
	HasDescription bool
}

// ParseLine parses a shell line. It returns false if the line does not
// match the grammar.
func ParseLine(input string) (Line, bool) {
	input = strings.TrimSpace(input)
	m := linePattern.FindStringSubmatchIndex(input)
	if m == nil {
		return Line{}, false
	}
	line := Line{Action: input[m[2]:m[3]]}
	if m[4] >= 0 {
		line.Arg = input[m[4]:m[5]]
	}
	if m[6] >= 0 {
		line.Description = input[m[6]:m[7]]
		line.HasDescription = true
	}
	return line, true
}

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session reading one command per line.

Lines use the same commands as the CLI, with the description in double
quotes and an optional "task-cli" prefix:

  > task-cli add "Buy groceries"
  > update 1 "Buy groceries and cook dinner"
  > mark-done 1
  > list done
  > exit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			tr, err := rootOpts.openTracker(f)
			if err != nil {
				return err
			}
			sh := &Shell{
				Tracker:   tr,
				Formatter: f,
				In:        cmd.InOrStdin(),
			}
			return sh.Run()
		},
	}
}

// Shell is the interactive command loop. All lines share one tracker, so
// the task file is loaded once per session.
type Shell struct {
	Tracker   *tracker.Tracker
	Formatter *OutputFormatter
	In        io.Reader
}

// Run reads lines until "exit" or end of input. Errors from individual
// lines are reported and the loop continues. Lines have no length limit.
//
// In JSON mode the banner and prompts go to the diagnostics writer, so the
// output writer carries one JSON envelope per line and nothing else.
func (s *Shell) Run() error {
	prompts := s.Formatter.Writer
	if s.Formatter.Format == "json" {
		prompts = s.Formatter.diagnostics()
	}
	fmt.Fprintln(prompts, "Welcome to task-cli. Type 'exit' to quit.")

	reader := bufio.NewReader(s.In)
	for {
		fmt.Fprint(prompts, "> ")
		raw, err := reader.ReadString('\n')
		if err != nil && (raw == "" || !errors.Is(err, io.EOF)) {
			fmt.Fprintln(prompts)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		input := strings.TrimSpace(raw)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			fmt.Fprintln(prompts, "Goodbye!")
			return nil
		}

		if err := s.Execute(input); err != nil {
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				_ = s.Formatter.Error(ErrCodeGeneric, err.Error(), nil)
			}
		}
	}
}

// Execute runs a single shell line.
func (s *Shell) Execute(input string) error {
	line, ok := ParseLine(input)
	if !ok {
		return fail(s.Formatter, ExitCommandError, ErrCodeInvalidCommand, "Invalid command", nil)
	}

	f := s.Formatter
	switch line.Action {
	case "add":
		return addTask(s.Tracker, f, line.Description)
	case "update":
		return updateTask(s.Tracker, f, line.Arg, line.Description)
	case "delete":
		return deleteTask(s.Tracker, f, line.Arg)
	case "mark-todo":
		return markTask(s.Tracker, f, line.Arg, task.StatusTodo)
	case "mark-in-progress":
		return markTask(s.Tracker, f, line.Arg, task.StatusInProgress)
	case "mark-done":
		return markTask(s.Tracker, f, line.Arg, task.StatusDone)
	case "list":
		return listTasks(s.Tracker, f, line.Arg)
	default:
		return fail(f, ExitCommandError, ErrCodeInvalidCommand,
			fmt.Sprintf("Unsupported command %q", line.Action), nil)
	}
}
