package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/invest"
	"github.com/google/subcommands"
)

type dropCmd struct {
	yes bool
}

func (*dropCmd) Name() string     { return "drop" }
func (*dropCmd) Synopsis() string { return "delete a position and all its trades" }
func (*dropCmd) Usage() string {
	return `invest drop [-y] <symbol>

  Deletes the position in <symbol> with all its trades. It asks for a
  confirmation unless -y is given.
`
}

func (c *dropCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for a confirmation")
}

func (c *dropCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: drop requires a symbol.")
		return subcommands.ExitUsageError
	}
	symbol := invest.NormalizeSymbol(f.Arg(0))

	ledger, s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	p, ok := ledger.Position(symbol)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: there is no %s position\n", symbol)
		return subcommands.ExitFailure
	}
	question := fmt.Sprintf("Delete the %s position and its %d trade(s)?", symbol, len(p.Trades))
	if !c.yes && !confirm(os.Stdin, os.Stderr, question) {
		fmt.Fprintln(os.Stderr, "Cancelled.")
		return subcommands.ExitSuccess
	}
	if err := ledger.DeletePosition(ctx, symbol); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger, the change may not be persisted: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted the %s position.\n", symbol)
	return subcommands.ExitSuccess
}

// confirm asks a yes/no question, no is the default.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
