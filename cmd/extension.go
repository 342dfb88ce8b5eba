package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Settings given to extensions, already resolved from flags, env and defaults.
const (
	EnvStore    = "INVEST_STORE"
	EnvQuotes   = "INVEST_QUOTES"
	EnvCurrency = "INVEST_CURRENCY"
	EnvVerbose  = "INVEST_VERBOSE"
)

// Verbose turns debug logs on, extensions get it as INVEST_VERBOSE.
var Verbose = flag.Bool("v", false, "log debug messages")

// Known reports whether name is a builtin subcommand.
func Known(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, e := range commands {
		if e.cmd.Name() == name {
			return true
		}
	}
	return false
}

// RunExtension runs the external 'invest-<subcommand>' found in PATH, with the
// current settings in its environment.
//
// It returns false if there is no such command, or its exit code.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "invest-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("command", name).Msg("no extension")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return true, 0
	case errors.As(err, &exitErr):
		return true, exitErr.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error executing %q: %v\n", name, err)
		return true, 1
	}
}

func extensionEnv() []string {
	return []string{
		EnvStore + "=" + setting(storeURI, EnvStore, "file:.invest"),
		EnvQuotes + "=" + setting(quotesProvider, EnvQuotes, "finnhub"),
		EnvCurrency + "=" + displayCurrency(),
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}
