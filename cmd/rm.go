package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest"
	"github.com/google/subcommands"
)

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a trade" }
func (*rmCmd) Usage() string {
	return `invest rm <symbol> <id>

  Deletes a trade. The position is closed when its last trade is deleted.
`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: rm requires a symbol and a trade id.")
		return subcommands.ExitUsageError
	}
	symbol, id := invest.NormalizeSymbol(f.Arg(0)), f.Arg(1)

	ledger, s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if _, ok := trade(ledger, symbol, id); !ok {
		fmt.Fprintf(os.Stderr, "Error: no trade %q in %s\n", id, symbol)
		return subcommands.ExitFailure
	}
	if err := ledger.DeleteTrade(ctx, symbol, id); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger, the change may not be persisted: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, ok := ledger.Position(symbol); !ok {
		fmt.Printf("Deleted trade %s, the %s position is closed.\n", id, symbol)
	} else {
		fmt.Printf("Deleted trade %s from %s.\n", id, symbol)
	}
	return subcommands.ExitSuccess
}
