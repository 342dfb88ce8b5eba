// Command invest keeps a ledger of stock positions. Run 'invest help'.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/invest/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logJSON = flag.Bool("log-json", false, "log as JSON lines instead of text")

func main() {
	name := path.Base(os.Args[0])
	cmd.Complete(name)

	// A missing .env file is fine.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	setupLogger()

	if args := flag.Args(); len(args) > 0 && !cmd.Known(args[0]) {
		if ok, code := cmd.RunExtension(args[0], args[1:]); ok {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func setupLogger() {
	level := zerolog.InfoLevel
	if *cmd.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if *logJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}
