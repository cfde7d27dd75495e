package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

var (
	configPath = flag.String("config", "", "Path to the YAML configuration file (optional)")
	logLevel   = flag.String("log-level", "", "Log level override (debug, info, warn, error, disabled)")
)

func main() {
	// A missing .env file is not an error; the environment may be set by other means.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&reportCmd{out: os.Stdout}, "reconciliation")
	commander.Register(&checkCmd{out: os.Stdout}, "reconciliation")
	commander.Register(&serveCmd{}, "service")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
