package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest"
	"github.com/etnz/invest/date"
	"github.com/google/subcommands"
)

type addCmd struct {
	date string
	id   string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a buy trade" }
func (*addCmd) Usage() string {
	return `invest add [-d <date>] [-id <id>] <symbol> <price> <shares>

  Records that <shares> shares of <symbol> were bought at <price> each.
  The trade joins the position in <symbol>, or opens it.

Usage Examples:
$ invest add AAPL 187.5 10
$ invest add -d 2024-3-1 msft 402 2.5
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Trade date, YYYY-MM-DD. Month and day may have a single digit.")
	f.StringVar(&c.id, "id", "", "Trade id. A new one is generated by default.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: add requires a symbol, a price and a number of shares.")
		return subcommands.ExitUsageError
	}
	trade, err := parseTrade(c.date, f.Arg(1), f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	trade.ID = c.id

	ledger, s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	return recordTrade(ctx, ledger, f.Arg(0), trade)
}

// parseTrade reads a trade from the command line. The trade is only checked
// for numbers, the ledger validates the rest.
func parseTrade(day, price, shares string) (invest.Trade, error) {
	p, ok := invest.ParseMoney(price)
	if !ok {
		return invest.Trade{}, fmt.Errorf("price %q is not a number", price)
	}
	q, ok := invest.ParseQuantity(shares)
	if !ok {
		return invest.Trade{}, fmt.Errorf("shares %q is not a number", shares)
	}
	return invest.Trade{Date: day, Price: p, Shares: q}, nil
}

// recordTrade adds the trade to the ledger and reports it.
func recordTrade(ctx context.Context, ledger *invest.Ledger, symbol string, trade invest.Trade) subcommands.ExitStatus {
	t, err := ledger.AddTrade(ctx, symbol, trade)
	switch {
	case errors.Is(err, invest.ErrInvalidTrade):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error saving ledger, the trade may not be persisted: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded trade %s: %s %s shares at %s on %s\n",
		t.ID, invest.NormalizeSymbol(symbol), t.Shares, t.Price.Format(displayCurrency()), t.Date)
	return subcommands.ExitSuccess
}
