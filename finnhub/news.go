package finnhub

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/etnz/invest/date"
)

// Article is a company news item.
type Article struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"` // unix seconds
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// Time returns the publication time.
func (a Article) Time() time.Time { return time.Unix(a.Datetime, 0).UTC() }

// Day returns the publication day.
func (a Article) Day() date.Date { return date.FromUnix(a.Datetime) }

// CompanyNews retrieves the news published about symbol between from and to,
// both included. Responses are cached for the day.
func (c *Client) CompanyNews(ctx context.Context, symbol string, from, to date.Date) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	query := url.Values{
		"symbol": {symbol},
		"from":   {from.String()},
		"to":     {to.String()},
	}
	var articles []Article
	if err := jwget(ctx, c.cached, c.url("/company-news", query), &articles); err != nil {
		return nil, fmt.Errorf("error retrieving news for %q: %w", symbol, err)
	}
	return articles, nil
}

// Latest returns at most n articles, newest first. Articles without headline
// or publication time are dropped.
func Latest(articles []Article, n int) []Article {
	res := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Headline != "" && a.Datetime > 0 {
			res = append(res, a)
		}
	}
	slices.SortStableFunc(res, func(a, b Article) int { return cmp.Compare(b.Datetime, a.Datetime) })
	if len(res) > n {
		res = res[:n]
	}
	return res
}
