package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest"
	"github.com/etnz/invest/date"
	"github.com/etnz/invest/renderer"
	"github.com/google/subcommands"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	offline bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display positions and their current valuation" }
func (*holdingCmd) Usage() string {
	return `invest holding [-offline]

  Displays every position with its cost, current price, market value and
  unrealized profit or loss, and the portfolio totals.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "do not request quotes, only show costs")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	quotes := make(invest.Quotes)
	if !c.offline {
		gw, err := quoteGateway()
		switch {
		case errors.Is(err, errNoQuotes):
			c.offline = true
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		default:
			q, err := invest.NewBoard(gw).Refresh(ctx, ledger.Symbols())
			if err != nil {
				// the costs are still worth showing.
				fmt.Fprintf(os.Stderr, "Warning: could not get quotes: %v\n", err)
			} else {
				quotes = q
			}
		}
	}

	h := renderer.NewHolding(date.Today(), displayCurrency(), ledger.Summary(quotes), c.offline)
	printMarkdown(renderer.RenderHolding(h))
	return subcommands.ExitSuccess
}
