package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/etnz/invest"
	"github.com/etnz/invest/date"
	"github.com/etnz/invest/finnhub"
	"google.golang.org/genai"
)

type fakeNews struct {
	articles []finnhub.Article
	err      error
	from, to date.Date
}

func (n *fakeNews) CompanyNews(_ context.Context, symbol string, from, to date.Date) ([]finnhub.Article, error) {
	n.from, n.to = from, to
	return n.articles, n.err
}

func TestNewsAnalyst_Analyze(t *testing.T) {
	today := date.New(2024, 6, 30)
	news := &fakeNews{}
	for i := range 10 {
		day := date.New(2024, 6, 1+i)
		news.articles = append(news.articles, finnhub.Article{
			Headline: fmt.Sprintf("headline %d", i),
			Datetime: day.Unix(),
			Source:   "Wire",
			Summary:  fmt.Sprintf("summary %d", i),
		})
	}
	m := &fakeModel{answer: "Hold."}
	a := &NewsAnalyst{news: news, model: m, today: func() date.Date { return today }}

	got, err := a.Analyze(context.Background(), NewsRequest{Symbol: " aapl", LastPlan: "Buy below 150."})
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	if got.Symbol != "AAPL" || got.Text != "Hold." {
		t.Errorf("Analyze() = %+v", got)
	}
	if want := today.Add(-90); news.from != want || news.to != today {
		t.Errorf("news requested for [%s, %s], want [%s, %s]", news.from, news.to, want, today)
	}
	if len(got.Articles) != MaxArticles || got.Articles[0].Headline != "headline 9" {
		t.Errorf("Analyze() kept %d articles starting with %q, want %d newest first", len(got.Articles), got.Articles[0].Headline, MaxArticles)
	}

	prompt := m.prompts[0]
	for _, want := range []string{"AAPL", "2024-06-10 - headline 9 (Wire)", "summary 9", "Buy below 150.", "hold, trim"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt does not contain %q:\n%s", want, prompt)
		}
	}
	for _, old := range []string{"headline 0", "headline 1 "} {
		if strings.Contains(prompt, old) {
			t.Errorf("prompt contains the old %q", old)
		}
	}
}

func TestNewsAnalyst_NoNews(t *testing.T) {
	m := &fakeModel{answer: ""}
	a := &NewsAnalyst{news: &fakeNews{}, model: m, today: date.Today}

	got, err := a.Analyze(context.Background(), NewsRequest{Symbol: "XYZ", From: date.Today().Add(-7)})
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	if got.Text == "" {
		t.Error("Analyze() returned an empty analysis")
	}
	if !strings.Contains(m.prompts[0], "No significant news.") || !strings.Contains(m.prompts[0], "No previous advice.") {
		t.Errorf("prompt:\n%s", m.prompts[0])
	}
}

func TestNewsAnalyst_Invalid(t *testing.T) {
	m := &fakeModel{}
	a := &NewsAnalyst{news: &fakeNews{}, model: m, today: date.Today}

	for _, req := range []NewsRequest{
		{Symbol: " "},
		{Symbol: "AAPL", From: date.Today().Add(3)},
	} {
		if _, err := a.Analyze(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Analyze(%+v) error = %v, want ErrInvalidRequest", req, err)
		}
	}
	if len(m.prompts) != 0 {
		t.Error("the model was asked an invalid request")
	}

	// a missing API key is reported.
	a.news = &fakeNews{err: finnhub.ErrMissingAPIKey}
	if _, err := a.Analyze(context.Background(), NewsRequest{Symbol: "AAPL"}); !errors.Is(err, finnhub.ErrMissingAPIKey) {
		t.Errorf("Analyze() error = %v, want %v", err, finnhub.ErrMissingAPIKey)
	}
}

func TestNewsAnalyst_NewsUnavailable(t *testing.T) {
	m := &fakeModel{answer: "Wait."}
	news := &fakeNews{err: errors.New("finnhub /company-news: 503 Service Unavailable")}
	a := &NewsAnalyst{news: news, model: m, today: date.Today}

	got, err := a.Analyze(context.Background(), NewsRequest{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	if got.Text != "Wait." || len(got.Articles) != 0 {
		t.Errorf("Analyze() = %+v, want the model answer and no articles", got)
	}
	if len(m.prompts) != 1 || !strings.Contains(m.prompts[0], "No significant news.") {
		t.Errorf("prompts = %q, want one without news", m.prompts)
	}
}

func TestPositionTool(t *testing.T) {
	positions := func(_ context.Context, symbol string) (invest.Valuation, bool, error) {
		switch invest.NormalizeSymbol(symbol) {
		case "AAPL":
			p := invest.Position{Symbol: "AAPL", Trades: []invest.Trade{{ID: "1", Date: "2024-01-01", Price: invest.M(100), Shares: invest.Q(2)}}}
			return invest.Valuate(p, invest.M(110)), true, nil
		case "FAIL":
			return invest.Valuation{}, false, errors.New("store down")
		}
		return invest.Valuation{}, false, nil
	}
	lib := NewLibrary([]Function{PositionTool(positions)})

	testCases := []struct {
		args map[string]any
		key  string
		want string
	}{
		{args: map[string]any{"symbol": "aapl"}, key: "output", want: `"pnl":20`},
		{args: map[string]any{"symbol": "MSFT"}, key: "output", want: "does not hold MSFT"},
		{args: map[string]any{"symbol": "FAIL"}, key: "error", want: "store down"},
		{args: map[string]any{"symbol": 12}, key: "error", want: "symbol"},
		{args: map[string]any{}, key: "error", want: "symbol"},
	}
	for _, tc := range testCases {
		resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: "Position", Args: tc.args})
		got, _ := resp.Response[tc.key].(string)
		if !strings.Contains(got, tc.want) {
			t.Errorf("Position(%v) %s = %q, want it to contain %q", tc.args, tc.key, got, tc.want)
		}
	}

	resp := lib(context.Background(), &genai.FunctionCall{ID: "2", Name: "Nope"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("unknown function answered %v", resp.Response)
	}
}
