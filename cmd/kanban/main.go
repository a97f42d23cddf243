package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/kanban/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to kanban.toml (default $KANBAN_CONFIG or ./kanban.toml)")
	theme := flag.String("theme", "", "output theme: classic, neon or mono")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		ConfigPath: *configPath,
		Theme:      *theme,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
