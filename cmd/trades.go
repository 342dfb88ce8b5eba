package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest"
	"github.com/etnz/invest/renderer"
	"github.com/google/subcommands"
)

type tradesCmd struct{}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list the trades of a position" }
func (*tradesCmd) Usage() string {
	return `invest trades <symbol>

  Lists the trades of a position with their ids, and its cost basis.
  Quotes are not requested.
`
}

func (*tradesCmd) SetFlags(f *flag.FlagSet) {}

func (*tradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: trades requires a symbol.")
		return subcommands.ExitUsageError
	}
	ledger, s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	p, ok := ledger.Position(f.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: there is no %s position\n", invest.NormalizeSymbol(f.Arg(0)))
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderTrades(&renderer.Trades{
		Currency:  displayCurrency(),
		Position:  p,
		Valuation: invest.Valuate(p, invest.Money{}),
	}))
	return subcommands.ExitSuccess
}
