package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest"
	"github.com/etnz/invest/agent"
	"github.com/etnz/invest/date"
	"github.com/google/subcommands"
)

type adoptCmd struct {
	date     string
	price    string
	anyStock bool
}

func (*adoptCmd) Name() string     { return "adopt" }
func (*adoptCmd) Synopsis() string { return "buy a stock suggested by the plan" }
func (*adoptCmd) Usage() string {
	return `invest adopt [-d <date>] [-price <price>] [-any] <symbol> <shares>

  Records the purchase of a stock suggested by the saved plan (see
  'invest plan'). The price defaults to the current quote.

Usage Examples:
$ invest adopt VTI 5
$ invest adopt -price 251.3 -d 2025-6-2 VTI 5
`
}

func (c *adoptCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Trade date, YYYY-MM-DD.")
	f.StringVar(&c.price, "price", "", "price per share, the current quote by default")
	f.BoolVar(&c.anyStock, "any", false, "accept a stock the plan does not suggest")
}

func (c *adoptCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: adopt requires a symbol and a number of shares.")
		return subcommands.ExitUsageError
	}
	symbol := invest.NormalizeSymbol(f.Arg(0))

	ledger, s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	plan, err := agent.LoadPlan(ctx, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the plan: %v\n", err)
		return subcommands.ExitFailure
	}
	if sug, ok := plan.Suggestion(symbol); ok {
		fmt.Fprintf(os.Stderr, "Adopting %s: %s\n", symbol, sug.Reason)
	} else if !c.anyStock {
		fmt.Fprintf(os.Stderr, "Error: the saved plan does not suggest %s, use -any to adopt it anyway.\n", symbol)
		return subcommands.ExitFailure
	}

	price := c.price
	if price == "" {
		p, err := currentPrice(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v, give the price with -price.\n", err)
			return subcommands.ExitFailure
		}
		price = p.Decimal().String()
	}
	trade, err := parseTrade(c.date, price, f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return recordTrade(ctx, ledger, symbol, trade)
}

// currentPrice returns the quote of symbol from the configured provider.
func currentPrice(ctx context.Context, symbol string) (invest.Money, error) {
	gw, err := quoteGateway()
	if err != nil {
		return invest.Money{}, err
	}
	quotes, err := gw.Quotes(ctx, []string{symbol})
	if err != nil {
		return invest.Money{}, err
	}
	p := quotes.Price(symbol)
	if !p.Valid() {
		return p, fmt.Errorf("no quote for %s", symbol)
	}
	return p, nil
}
