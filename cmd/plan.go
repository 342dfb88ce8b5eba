package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest"
	"github.com/etnz/invest/agent"
	"github.com/etnz/invest/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type planCmd struct {
	horizon  string
	goal     string
	risk     string
	amount   string
	monthly  string
	industry string
	note     string
	clear    bool
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "generate an investment plan" }
func (*planCmd) Usage() string {
	return `invest plan [-horizon <h> -goal <g> -risk <r> -amount <amount>] [-monthly <amount>] [-industry <text>] [-note <text>]
invest plan -clear

  Asks Gemini for an investment plan matching your profile, with a few
  suggested stocks. The plan is saved, and shown again when no profile is
  given. Adopt a suggested stock with 'invest adopt'.

  Horizons and their goals:
    short   m5, m10, m20  (percent a month)
    medium  m3, m5, m8    (percent a month)
    long    y5, y10, y15  (percent a year)

  Gemini's API key is read from GEMINI_API_KEY.

Usage Examples:
$ invest plan -horizon long -goal y10 -risk balanced -amount 10000 -monthly 250
$ invest plan
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.horizon, "horizon", "", "investment horizon: short, medium or long")
	f.StringVar(&c.goal, "goal", "", "return goal, like m5 or y10")
	f.StringVar(&c.risk, "risk", string(agent.Balanced), "risk tolerance: conservative, balanced or aggressive")
	f.StringVar(&c.amount, "amount", "", "initial amount to invest")
	f.StringVar(&c.monthly, "monthly", "", "amount added every month")
	f.StringVar(&c.industry, "industry", "", "preferred industries")
	f.StringVar(&c.note, "note", "", "anything else the advisor should know")
	f.BoolVar(&c.clear, "clear", false, "forget the saved plan")
}

func (c *planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	switch {
	case c.clear:
		if err := agent.ClearPlan(ctx, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing the plan: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("The saved plan is cleared.")
		return subcommands.ExitSuccess

	case c.horizon == "" && c.amount == "":
		res, err := agent.LoadPlan(ctx, s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading the plan: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RenderPlan(res))
		return subcommands.ExitSuccess
	}

	req, err := c.request()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(os.Stderr, "Generating the plan, this takes a while...")
	res, err := agent.NewPlanner(client).Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating the plan: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := agent.SavePlan(ctx, s, res); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: the plan is not saved: %v\n", err)
	}
	printMarkdown(renderer.RenderPlan(res))
	return subcommands.ExitSuccess
}

// request builds and validates the plan request from the flags.
func (c *planCmd) request() (agent.PlanRequest, error) {
	req := agent.PlanRequest{
		Horizon:            agent.Horizon(c.horizon),
		Goal:               agent.Goal(c.goal),
		Risk:               agent.Risk(c.risk),
		IndustryPreference: c.industry,
		Note:               c.note,
	}
	var ok bool
	if req.InitialAmount, ok = invest.ParseMoney(c.amount); !ok {
		return req, fmt.Errorf("%w: amount %q is not a number", agent.ErrInvalidRequest, c.amount)
	}
	if c.monthly != "" {
		if req.MonthlyAmount, ok = invest.ParseMoney(c.monthly); !ok {
			return req, fmt.Errorf("%w: monthly amount %q is not a number", agent.ErrInvalidRequest, c.monthly)
		}
	}
	return req, req.Validate()
}
