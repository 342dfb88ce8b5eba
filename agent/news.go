package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/invest"
	"github.com/etnz/invest/date"
	"github.com/etnz/invest/finnhub"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// MaxArticles is the number of news articles given to the model.
const MaxArticles = 8

// DefaultLookback is the number of days of news when no start is given.
const DefaultLookback = 90

// NewsSource retrieves company news.
type NewsSource interface {
	CompanyNews(ctx context.Context, symbol string, from, to date.Date) ([]finnhub.Article, error)
}

// NewsRequest asks for a review of a held stock.
type NewsRequest struct {
	Symbol   string    `json:"symbol"`
	From     date.Date `json:"from"`      // zero for DefaultLookback days ago
	LastPlan string    `json:"lastPlans"` // advice previously given, if any
}

// Analysis is the review of a stock in the light of its recent news.
type Analysis struct {
	Symbol   string            `json:"symbol"`
	From     date.Date         `json:"from"`
	To       date.Date         `json:"to"`
	Articles []finnhub.Article `json:"articles"`
	Text     string            `json:"analysis"`
}

// NewsAnalyst reviews held stocks from their recent news.
type NewsAnalyst struct {
	news  NewsSource
	model Completer
	today func() date.Date
}

// NewNewsAnalyst returns an analyst asking Gemini through client. The model
// can read the user's positions.
func NewNewsAnalyst(client *genai.Client, news NewsSource, positions PositionFunc) *NewsAnalyst {
	return &NewsAnalyst{
		news:  news,
		model: Consult(client, NewAnalystExpert(positions)),
		today: date.Today,
	}
}

// NewAnalystExpert returns the expert reviewing news.
func NewAnalystExpert(positions PositionFunc) *Expert {
	lib := []Function{PositionTool(positions)}
	e := NewExpert("Analyst", "A conservative US stock advisor following the user's positions.")
	e.Config = &genai.GenerateContentConfig{
		Temperature: ptr[float32](0.7),
		Tools: []*genai.Tool{
			{FunctionDeclarations: NewDeclaration(lib)},
		},
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a professional and conservative US stock advisor.
			Use the Position tool to learn about the user's position before giving advice.
			Answer in markdown. Stay factual and calm, never exaggerate returns, never guarantee anything.
		`}}},
	}
	e.Library = NewLibrary(lib)
	return e
}

// Analyze reviews a stock from its news since req.From.
func (a *NewsAnalyst) Analyze(ctx context.Context, req NewsRequest) (Analysis, error) {
	symbol := invest.NormalizeSymbol(req.Symbol)
	if symbol == "" {
		return Analysis{}, fmt.Errorf("%w: a symbol is required", ErrInvalidRequest)
	}
	to := a.today()
	from := req.From
	if from.IsZero() {
		from = to.Add(-DefaultLookback)
	}
	if from.After(to) {
		return Analysis{}, fmt.Errorf("%w: start date %s is in the future", ErrInvalidRequest, from)
	}

	// Without news, the analysis still stands on the position and past advice.
	articles, err := a.news.CompanyNews(ctx, symbol, from, to)
	if errors.Is(err, finnhub.ErrMissingAPIKey) {
		return Analysis{}, err
	}
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("no company news")
		articles = nil
	}
	articles = finnhub.Latest(articles, MaxArticles)

	text, err := a.model.Complete(ctx, newsPrompt(symbol, from, articles, req.LastPlan))
	if err != nil {
		return Analysis{}, fmt.Errorf("could not analyze %s news: %w", symbol, err)
	}
	if text == "" {
		text = "No analysis available at the moment."
	}
	return Analysis{Symbol: symbol, From: from, To: to, Articles: articles, Text: text}, nil
}

func newsPrompt(symbol string, from date.Date, articles []finnhub.Article, lastPlan string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review the user's position in %s from the information below.\n\n", symbol)

	fmt.Fprintf(&b, "## Held since\n\n%s\n\n", from)

	fmt.Fprintln(&b, "## Recent news")
	fmt.Fprintln(&b)
	if len(articles) == 0 {
		fmt.Fprintln(&b, "No significant news.")
	}
	for _, a := range articles {
		fmt.Fprintf(&b, "%s - %s (%s)\n", a.Day(), a.Headline, a.Source)
		if a.Summary != "" {
			fmt.Fprintln(&b, a.Summary)
		}
		fmt.Fprintln(&b)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "## Advice previously given")
	fmt.Fprintln(&b)
	if strings.TrimSpace(lastPlan) == "" {
		fmt.Fprintln(&b, "No previous advice.")
	} else {
		fmt.Fprintln(&b, strings.TrimSpace(lastPlan))
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Answer with a list covering:")
	fmt.Fprintln(&b, "1. The key events or news that may move the price, the fundamentals or the valuation.")
	fmt.Fprintln(&b, "2. Whether the holder should hold, trim on strength, add on weakness or wait, and why.")
	fmt.Fprintln(&b, "3. A short risk reminder: industry, single event, market volatility.")
	fmt.Fprintln(&b, "4. How often to review the position, and whether to set a stop loss or a target price (a range is fine).")
	return b.String()
}
