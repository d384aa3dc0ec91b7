// Command pft is a personal finance tracker.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fintrack/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// a missing .env file is not an error
	_ = godotenv.Load()

	name := path.Base(os.Args[0])
	cmd.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
