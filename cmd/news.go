package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest"
	"github.com/etnz/invest/agent"
	"github.com/etnz/invest/date"
	"github.com/etnz/invest/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type newsCmd struct {
	from   string
	noPlan bool
}

func (*newsCmd) Name() string     { return "news" }
func (*newsCmd) Synopsis() string { return "review a position in the light of recent news" }
func (*newsCmd) Usage() string {
	return `invest news [-from <date>] [-no-plan] <symbol>

  Asks Gemini to review your position in <symbol> from the latest company
  news published by Finnhub. The saved plan, if any, is given as the advice
  previously received.

  Finnhub's API key is read from FINNHUB_API_KEY and Gemini's from
  GEMINI_API_KEY.
`
}

func (c *newsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", fmt.Sprintf("first day of news, %d days ago by default", agent.DefaultLookback))
	f.BoolVar(&c.noPlan, "no-plan", false, "do not tell the saved plan")
}

func (c *newsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: news requires a symbol.")
		return subcommands.ExitUsageError
	}
	req := agent.NewsRequest{Symbol: f.Arg(0)}
	if c.from != "" {
		from, err := date.Parse(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		req.From = from
	}

	ledger, s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if !c.noPlan {
		plan, err := agent.LoadPlan(ctx, s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: the saved plan is ignored: %v\n", err)
		} else if !plan.Plan.IsZero() {
			req.LastPlan = renderer.RenderPlan(plan)
		}
	}

	fh, err := finnhubClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewNewsAnalyst(client, fh, ledgerPositions(ledger))
	fmt.Fprintln(os.Stderr, "Reading the news, this takes a while...")
	a, err := analyst.Analyze(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing the news: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderNews(a))
	return subcommands.ExitSuccess
}

// ledgerPositions values the ledger positions at their current price, for the
// advisors. Without a quote provider positions are valued at cost only.
func ledgerPositions(ledger *invest.Ledger) agent.PositionFunc {
	return func(ctx context.Context, symbol string) (invest.Valuation, bool, error) {
		p, ok := ledger.Position(symbol)
		if !ok {
			return invest.Valuation{}, false, nil
		}
		price, err := currentPrice(ctx, p.Symbol)
		if err != nil {
			price = invest.Money{}
		}
		return invest.Valuate(p, price), true, nil
	}
}
