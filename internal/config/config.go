// Package config reads task-cli settings from the environment.
package config

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/kirsle/configdir"
	"github.com/pkg/errors"
)

// AppName names the per-user configuration directory.
const AppName = "task-cli"

// EnvPrefix prefixes every environment variable read by Parse.
const EnvPrefix = "TASK_CLI_"

// Config holds the task-cli settings. Every field maps to an environment
// variable under EnvPrefix; command-line flags override them.
type Config struct {
	// File is the backing file of the task list.
	File string `env:"FILE" envDefault:"tasks.json"`

	// Format is the default output format, "text" or "json".
	Format string `env:"FORMAT" envDefault:"text"`

	// FileFormat forces the encoding of File, "json" or "yaml". Empty
	// derives it from the extension of File.
	FileFormat string `env:"FILE_FORMAT"`

	Logger Logger `envPrefix:"LOG_"`
}

// Logger configures the slog handler on stderr; Level is a level name
// accepted by ParseLevel, read from TASK_CLI_LOG_LEVEL.
type Logger struct {
	Level string `env:"LEVEL" envDefault:"warn"`
}

// Parse reads the configuration from TASK_CLI_* environment variables.
func Parse() (*Config, error) {
	return ParseEnvironment(nil)
}

// ParseEnvironment reads the configuration from environment, or from the
// process environment when it is nil.
func ParseEnvironment(environment map[string]string) (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if _, err := ParseLevel(conf.Logger.Level); err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}

// ParseLevel converts a level name (debug, info, warn, error) to slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", name)
	}
	return level, nil
}

// GlobalDir returns the per-user configuration directory of task-cli.
func GlobalDir() string {
	return configdir.LocalConfig(AppName)
}

// GlobalFile returns the per-user task file, creating its directory.
func GlobalFile() (string, error) {
	dir := GlobalDir()
	if err := configdir.MakePath(dir); err != nil {
		return "", errors.WithStack(err)
	}
	return filepath.Join(dir, "tasks.json"), nil
}
