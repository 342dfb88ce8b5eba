package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/invest"
	"google.golang.org/genai"
)

// Store keys of the last generated plan.
const (
	PlanKey    = "investment_plan"
	TickersKey = "investment_tickers"
)

// Planner generates investment plans.
type Planner struct {
	model Completer
}

// NewPlanner returns a Planner asking Gemini through client.
func NewPlanner(client *genai.Client) *Planner {
	return &Planner{model: Consult(client, NewPlannerExpert())}
}

// NewPlannerExpert returns the expert writing plans, answering in JSON only.
func NewPlannerExpert() *Expert {
	e := NewExpert("Planner", "A US stock investment advisor writing investment plans.")
	e.Config = &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      ptr[float32](0.7),
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a professional US stock investment advisor.
			You answer with a single JSON document and nothing else: no markdown, no comments.
			You never promise returns.
		`}}},
	}
	return e
}

// Generate writes a plan for the request.
func (p *Planner) Generate(ctx context.Context, req PlanRequest) (PlanResult, error) {
	if err := req.Validate(); err != nil {
		return PlanResult{}, err
	}
	raw, err := p.model.Complete(ctx, planPrompt(req))
	if err != nil {
		return PlanResult{}, fmt.Errorf("could not generate a plan: %w", err)
	}
	return parsePlan(raw), nil
}

func planPrompt(req PlanRequest) string {
	industry := strings.TrimSpace(req.IndustryPreference)
	if industry == "" {
		industry = "no preference, pick the industries that best fit the user's goal"
	}
	monthly := "no"
	if req.MonthlyAmount.IsPositive() {
		monthly = fmt.Sprintf("yes, %s every month", req.MonthlyAmount)
	}
	note := strings.TrimSpace(req.Note)
	if note == "" {
		note = "none"
	}

	var b strings.Builder
	fmt.Fprintln(&b, "Write an investment plan in US stocks for the user below.")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "The answer is a JSON object with exactly two fields:")
	fmt.Fprintln(&b, `- "plan", an object with the string sections "market_view" (market outlook), "strategy" (core strategy),`)
	fmt.Fprintln(&b, `  "allocation" (how to split the money), "entry_exit" (buy and sell tactics with price ranges) and "risk" (risks and caveats).`)
	fmt.Fprintln(&b, `- "tickers", a list of 3 to 6 US stocks as {"symbol": "AAPL", "reason": "..."}, each reason in a dozen words.`)
	fmt.Fprintln(&b, "Suggested stocks must respect the industry preference, including exclusions like \"no financials\".")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "User profile:")
	fmt.Fprintf(&b, "- Horizon: %s\n", req.Horizon.describe())
	fmt.Fprintf(&b, "- Return target: %s\n", req.Goal.describe())
	fmt.Fprintf(&b, "- Risk tolerance: %s\n", req.Risk.describe())
	fmt.Fprintf(&b, "- Initial amount: %s\n", req.InitialAmount)
	fmt.Fprintf(&b, "- Monthly top-up: %s\n", monthly)
	fmt.Fprintf(&b, "- Industry preference: %s\n", industry)
	fmt.Fprintf(&b, "- Note: %s\n", note)
	return b.String()
}

// SavePlan stores the plan as the last generated one.
func SavePlan(ctx context.Context, store invest.Store, res PlanResult) error {
	plan, err := json.Marshal(res.Plan)
	if err != nil {
		return err
	}
	tickers := res.Tickers
	if tickers == nil {
		tickers = []Suggestion{}
	}
	data, err := json.Marshal(tickers)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, PlanKey, plan); err != nil {
		return fmt.Errorf("could not save plan: %w", err)
	}
	if err := store.Put(ctx, TickersKey, data); err != nil {
		return fmt.Errorf("could not save plan tickers: %w", err)
	}
	return nil
}

// LoadPlan returns the last generated plan, a zero plan if there is none.
// Unreadable tickers are ignored.
func LoadPlan(ctx context.Context, store invest.Store) (PlanResult, error) {
	res := PlanResult{Tickers: []Suggestion{}}
	plan, err := store.Get(ctx, PlanKey)
	switch {
	case errors.Is(err, invest.ErrNotFound):
	case err != nil:
		return res, fmt.Errorf("could not load plan: %w", err)
	default:
		if err := json.Unmarshal(plan, &res.Plan); err != nil {
			// kept verbatim, like an unparsable answer.
			res.Plan = Plan{Text: string(plan)}
		}
	}

	tickers, err := store.Get(ctx, TickersKey)
	switch {
	case errors.Is(err, invest.ErrNotFound):
	case err != nil:
		return res, fmt.Errorf("could not load plan tickers: %w", err)
	default:
		var ts []Suggestion
		if err := json.Unmarshal(tickers, &ts); err == nil && ts != nil {
			res.Tickers = ts
		}
	}
	return res, nil
}

// ClearPlan forgets the last generated plan.
func ClearPlan(ctx context.Context, store invest.Store) error {
	return errors.Join(store.Delete(ctx, PlanKey), store.Delete(ctx, TickersKey))
}
