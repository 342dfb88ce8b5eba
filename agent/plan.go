package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/etnz/invest"
)

// Horizon is the investment period.
type Horizon string

const (
	Short  Horizon = "short"  // a few weeks
	Medium Horizon = "medium" // 1 to 6 months
	Long   Horizon = "long"   // 6 months to 3 years
)

// Risk is the user's risk tolerance.
type Risk string

const (
	Conservative Risk = "conservative"
	Balanced     Risk = "balanced"
	Aggressive   Risk = "aggressive"
)

// Goal is a return target, like "m5" for 5% a month or "y10" for 10% a year.
type Goal string

// Goals lists the return targets that make sense for each horizon.
var Goals = map[Horizon][]Goal{
	Short:  {"m5", "m10", "m20"},
	Medium: {"m3", "m5", "m8"},
	Long:   {"y5", "y10", "y15"},
}

func (h Horizon) describe() string {
	switch h {
	case Short:
		return "short term (a few weeks)"
	case Medium:
		return "medium term (1 to 6 months)"
	case Long:
		return "long term (6 months to 3 years)"
	}
	return string(h)
}

func (r Risk) describe() string {
	switch r {
	case Conservative:
		return "conservative, cares about the downside"
	case Balanced:
		return "balanced between risk and return"
	case Aggressive:
		return "aggressive, can stand large swings"
	}
	return string(r)
}

func (g Goal) describe() string {
	if len(g) < 2 {
		return string(g)
	}
	switch g[0] {
	case 'm':
		return fmt.Sprintf("about %s%% a month", g[1:])
	case 'y':
		return fmt.Sprintf("about %s%% a year", g[1:])
	}
	return string(g)
}

// PlanRequest holds the user's investment profile.
type PlanRequest struct {
	Horizon            Horizon      `json:"horizon"`
	Goal               Goal         `json:"goal"`
	Risk               Risk         `json:"risk"`
	InitialAmount      invest.Money `json:"initialAmount"`
	MonthlyAmount      invest.Money `json:"monthlyAmount"` // invalid for no monthly top-up
	IndustryPreference string       `json:"industryPreference"`
	Note               string       `json:"note"`
}

// Validate checks the request. Errors wrap ErrInvalidRequest.
func (r PlanRequest) Validate() error {
	goals, ok := Goals[r.Horizon]
	if !ok {
		return fmt.Errorf("%w: unknown horizon %q, want %q, %q or %q", ErrInvalidRequest, r.Horizon, Short, Medium, Long)
	}
	if !slices.Contains(goals, r.Goal) {
		return fmt.Errorf("%w: goal %q does not fit a %s horizon, want one of %q", ErrInvalidRequest, r.Goal, r.Horizon, goals)
	}
	switch r.Risk {
	case Conservative, Balanced, Aggressive:
	default:
		return fmt.Errorf("%w: unknown risk %q, want %q, %q or %q", ErrInvalidRequest, r.Risk, Conservative, Balanced, Aggressive)
	}
	if !r.InitialAmount.IsPositive() {
		return fmt.Errorf("%w: an initial amount is required", ErrInvalidRequest)
	}
	if r.MonthlyAmount.IsNegative() {
		return fmt.Errorf("%w: the monthly amount cannot be negative", ErrInvalidRequest)
	}
	return nil
}

// Plan is an investment plan in five sections.
//
// When the model answer could not be understood, it is kept verbatim in Text
// and the sections are empty.
type Plan struct {
	MarketView string `json:"market_view"`
	Strategy   string `json:"strategy"`
	Allocation string `json:"allocation"`
	EntryExit  string `json:"entry_exit"`
	Risk       string `json:"risk"`
	Text       string `json:"-"`
}

// IsZero reports whether there is no plan at all.
func (p Plan) IsZero() bool { return p == Plan{} }

// MarshalJSON writes the sections as an object, or the verbatim text as a string.
func (p Plan) MarshalJSON() ([]byte, error) {
	if p.Text != "" {
		return json.Marshal(p.Text)
	}
	type sections Plan
	return json.Marshal(sections(p))
}

// UnmarshalJSON reads either form written by MarshalJSON.
func (p *Plan) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		*p = Plan{}
		return json.Unmarshal(b, &p.Text)
	}
	type sections Plan
	var s sections
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = Plan(s)
	return nil
}

// Suggestion is a stock proposed by a plan.
type Suggestion struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// PlanResult is the answer of the Planner.
type PlanResult struct {
	Plan    Plan         `json:"plan"`
	Tickers []Suggestion `json:"tickers"`
}

// Suggestion returns the suggested ticker for symbol.
func (r PlanResult) Suggestion(symbol string) (Suggestion, bool) {
	symbol = invest.NormalizeSymbol(symbol)
	for _, s := range r.Tickers {
		if s.Symbol == symbol {
			return s, true
		}
	}
	return Suggestion{}, false
}

// parsePlan reads the model answer. Markdown code fences are ignored. An
// answer that is not the expected JSON is kept as the plan text, with no
// tickers.
func parsePlan(raw string) PlanResult {
	cleaned := stripFences(raw)
	var parsed struct {
		Plan    *Plan        `json:"plan"`
		Tickers []Suggestion `json:"tickers"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return PlanResult{Plan: Plan{Text: cleaned}, Tickers: []Suggestion{}}
	}
	res := PlanResult{Tickers: make([]Suggestion, 0, len(parsed.Tickers))}
	if parsed.Plan != nil {
		res.Plan = *parsed.Plan
	}
	for _, s := range parsed.Tickers {
		s.Symbol = invest.NormalizeSymbol(s.Symbol)
		if s.Symbol != "" {
			res.Tickers = append(res.Tickers, s)
		}
	}
	return res
}

var fence = regexp.MustCompile("(?i)```(json)?")

func stripFences(raw string) string {
	return strings.TrimSpace(fence.ReplaceAllString(raw, ""))
}
