// Command task-cli tracks tasks in a local file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/taskcli/internal/cli"
	"github.com/roach88/taskcli/internal/config"
)

func main() {
	conf, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not parse config: %+v\n", err)
		os.Exit(cli.ExitCommandError)
	}

	cmd := cli.NewRootCommand(cli.OptionsFromConfig(conf))
	if err := cmd.Execute(); err != nil {
		// ExitErrors have already been reported by the output formatter.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
