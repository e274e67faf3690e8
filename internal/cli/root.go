package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/taskcli/internal/config"
	"github.com/roach88/taskcli/internal/store"
	"github.com/roach88/taskcli/internal/task"
	"github.com/roach88/taskcli/internal/tracker"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	File     string
	Global   bool
	LogLevel string

	// FileFormat forces the task file encoding ("json" or "yaml"). Empty
	// derives it from the file extension.
	FileFormat string

	// Fs allows overriding the filesystem holding the task file (for testing).
	// If nil, defaults to the OS filesystem.
	Fs afero.Fs

	// Clock allows overriding the wall clock (for testing).
	// If nil, defaults to task.SystemClock.
	Clock task.Clock

	logger  *slog.Logger
	store   *store.Store
	tracker *tracker.Tracker
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// OptionsFromConfig returns root options initialised from conf.
func OptionsFromConfig(conf *config.Config) *RootOptions {
	return &RootOptions{
		Format:     conf.Format,
		File:       conf.File,
		FileFormat: conf.FileFormat,
		LogLevel:   conf.Logger.Level,
	}
}

// NewRootCommand creates the root command for the task-cli CLI.
// Flag defaults are taken from opts.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts.Format == "" {
		opts.Format = "text"
	}
	if opts.File == "" {
		opts.File = store.DefaultPath
	}
	if opts.LogLevel == "" {
		opts.LogLevel = "warn"
	}

	cmd := &cobra.Command{
		Use:   "task-cli",
		Short: "task-cli - track tasks from the command line",
		Long: `A command-line task tracker.

Tasks are kept in a single pretty-printed JSON (or YAML) file that is
rewritten after every change. Each task has an id, a description, a status
(todo, in-progress, done) and creation/update times.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := store.ParseFormat(opts.FileFormat); err != nil {
				return err
			}
			return opts.configureLogging(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", opts.Format, "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", opts.File, "task file (.json, .yaml or .yml)")
	cmd.PersistentFlags().StringVar(&opts.FileFormat, "file-format", opts.FileFormat, "task file encoding (json|yaml), derived from the extension when empty")
	cmd.PersistentFlags().BoolVar(&opts.Global, "global", false, "use the per-user task file instead of --file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level (debug|info|warn|error)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewMarkCommand(opts, "mark-todo", task.StatusTodo))
	cmd.AddCommand(NewMarkCommand(opts, "mark-in-progress", task.StatusInProgress))
	cmd.AddCommand(NewMarkCommand(opts, "mark-done", task.StatusDone))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// configureLogging installs a text slog handler on stderr at the configured
// level, or debug when --verbose is set.
func (o *RootOptions) configureLogging(cmd *cobra.Command) error {
	level, err := config.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}
	if o.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	o.logger = slog.New(handler)
	slog.SetDefault(o.logger)
	return nil
}

// Tracker opens the task file on first use and returns the tracker shared
// by every command of this process.
func (o *RootOptions) Tracker() (*tracker.Tracker, error) {
	if o.tracker != nil {
		return o.tracker, nil
	}

	path := o.File
	if o.Global {
		global, err := config.GlobalFile()
		if err != nil {
			return nil, fmt.Errorf("locate per-user task file: %w", err)
		}
		path = global
	}

	clock := o.Clock
	if clock == nil {
		clock = task.SystemClock{}
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	fileFormat, err := store.ParseFormat(o.FileFormat)
	if err != nil {
		return nil, err
	}

	storeOpts := []store.Option{store.WithClock(clock), store.WithLogger(logger), store.WithFormat(fileFormat)}
	if o.Fs != nil {
		storeOpts = append(storeOpts, store.WithFs(o.Fs))
	}
	st := store.Open(path, storeOpts...)

	tr, err := tracker.New(st, clock)
	if err != nil {
		return nil, fmt.Errorf("start tracker: %w", err)
	}
	o.store = st
	o.tracker = tr
	return tr, nil
}

// formatter returns an OutputFormatter writing to the command's streams.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// openTracker returns the shared tracker, reporting failures through f.
func (o *RootOptions) openTracker(f *OutputFormatter) (*tracker.Tracker, error) {
	tr, err := o.Tracker()
	if err != nil {
		return nil, fail(f, ExitCommandError, ErrCodeGeneric, "could not open task file", err)
	}
	f.VerboseLog("task file %s: %d tasks", o.store.Path(), len(o.store.GetAll()))
	return tr, nil
}
