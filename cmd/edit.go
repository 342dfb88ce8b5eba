package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest"
	"github.com/google/subcommands"
)

type editCmd struct{}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change one field of a trade" }
func (*editCmd) Usage() string {
	return `invest edit <symbol> <id> <field> <value>

  Changes the date, price or shares of a trade. Use 'invest trades <symbol>'
  to find trade ids.

  A price or a number of shares that is not a number is ignored, and the
  trade keeps its previous value. Dates are taken as typed.

Usage Examples:
$ invest edit AAPL 3f2a9c1e-... price 185.2
`
}

func (*editCmd) SetFlags(f *flag.FlagSet) {}

func (*editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 4 {
		fmt.Fprintln(os.Stderr, "Error: edit requires a symbol, a trade id, a field and a value.")
		return subcommands.ExitUsageError
	}
	symbol, id, raw := f.Arg(0), f.Arg(1), f.Arg(3)
	field, err := invest.ParseTradeField(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if _, ok := trade(ledger, symbol, id); !ok {
		fmt.Fprintf(os.Stderr, "Error: no trade %q in %s\n", id, invest.NormalizeSymbol(symbol))
		return subcommands.ExitFailure
	}
	if err := ledger.EditTradeField(ctx, symbol, id, field, raw); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger, the change may not be persisted: %v\n", err)
		return subcommands.ExitFailure
	}
	after, _ := trade(ledger, symbol, id)
	if !editable(field, raw) {
		fmt.Fprintf(os.Stderr, "Warning: %q is not a valid %s, trade %s is unchanged.\n", raw, field, id)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Updated trade %s: %s %s shares at %s on %s\n",
		id, invest.NormalizeSymbol(symbol), after.Shares, after.Price.Format(displayCurrency()), after.Date)
	return subcommands.ExitSuccess
}

// editable reports whether raw is a value the ledger takes for field.
func editable(field invest.TradeField, raw string) bool {
	switch field {
	case invest.FieldPrice:
		_, ok := invest.ParseMoney(raw)
		return ok
	case invest.FieldShares:
		_, ok := invest.ParseQuantity(raw)
		return ok
	}
	return true
}

func trade(ledger *invest.Ledger, symbol, id string) (invest.Trade, bool) {
	p, ok := ledger.Position(symbol)
	if !ok {
		return invest.Trade{}, false
	}
	return p.Trade(id)
}
