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

type quoteCmd struct {
	held bool
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "display current prices" }
func (*quoteCmd) Usage() string {
	return `invest quote [-held] <symbol>...

  Displays the current price of each symbol from the configured provider.
  With -held, the held symbols are quoted too.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.held, "held", false, "quote the held symbols too")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbols := f.Args()
	if c.held {
		ledger, s, err := openLedger(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		s.Close()
		symbols = append(symbols, ledger.Symbols()...)
	}
	set, _ := invest.SymbolSet(symbols)
	if len(set) == 0 {
		fmt.Fprintln(os.Stderr, "Error: quote requires at least one symbol.")
		return subcommands.ExitUsageError
	}

	gw, err := quoteGateway()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	quotes, err := gw.Quotes(ctx, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting quotes: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderQuotes(displayCurrency(), set, quotes))
	return subcommands.ExitSuccess
}
