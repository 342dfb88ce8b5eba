// Package eodhd implements the invest.Gateway with EODHD real-time prices.
package eodhd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/etnz/invest"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api"

// ErrMissingAPIKey is returned by any request made without an API key.
var ErrMissingAPIKey = errors.New("eodhd: missing API key")

// symbols per request, EODHD recommends no more than 15-20.
const batchSize = 15

// Gateway retrieves delayed real-time prices.
//
// Symbols are plain tickers, EODHD tickers are built by appending the
// exchange code (US by default).
type Gateway struct {
	apiKey   string
	baseURL  string
	exchange string
	client   *http.Client
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithBaseURL sets the API root, to use a test server.
func WithBaseURL(u string) Option { return func(g *Gateway) { g.baseURL = u } }

// WithHTTPClient sets the http client.
func WithHTTPClient(c *http.Client) Option { return func(g *Gateway) { g.client = c } }

// WithExchange sets the EODHD exchange code appended to symbols.
func WithExchange(code string) Option { return func(g *Gateway) { g.exchange = code } }

// New returns a gateway.
func New(apiKey string, opts ...Option) *Gateway {
	g := &Gateway{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		exchange: "US",
		client:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// quote is the subset of the real-time payload we use.
//
//	{"code":"AAPL.US","timestamp":1717000000,"gmtoffset":0,"open":189.6,
//	 "high":190.3,"low":188.2,"close":189.99,"volume":2345,"previousClose":189.1,
//	 "change":0.89,"change_p":0.47}
//
// Unknown tickers have "NA" values, that decode as invalid prices.
type quote struct {
	Code  string       `json:"code"`
	Close invest.Money `json:"close"`
}

// Quotes implements invest.Gateway.
func (g *Gateway) Quotes(ctx context.Context, symbols []string) (invest.Quotes, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	quotes := make(invest.Quotes, len(symbols))
	for _, s := range symbols {
		quotes[s] = invest.Money{}
	}

	for batch := range slices.Chunk(symbols, batchSize) {
		res, err := g.fetch(ctx, batch)
		if err != nil {
			log.Warn().Err(err).Strs("symbols", batch).Msg("quotes unavailable")
			continue
		}
		for _, q := range res {
			symbol := g.symbol(q.Code)
			if _, requested := quotes[symbol]; !requested {
				continue
			}
			if q.Close.IsPositive() {
				quotes[symbol] = q.Close
			}
		}
	}
	return quotes, nil
}

func (g *Gateway) ticker(symbol string) string { return symbol + "." + g.exchange }

func (g *Gateway) symbol(code string) string { return strings.TrimSuffix(code, "."+g.exchange) }

// fetch requests a batch of symbols. EODHD answers a single object for a
// single ticker, and an array otherwise.
func (g *Gateway) fetch(ctx context.Context, symbols []string) ([]quote, error) {
	tickers := make([]string, len(symbols))
	for i, s := range symbols {
		tickers[i] = g.ticker(s)
	}
	query := url.Values{
		"api_token": {g.apiKey},
		"fmt":       {"json"},
	}
	if len(tickers) > 1 {
		query.Set("s", strings.Join(tickers[1:], ","))
	}
	addr := fmt.Sprintf("%s/real-time/%s?%s", g.baseURL, url.PathEscape(tickers[0]), query.Encode())

	var raw json.RawMessage
	if err := jwget(ctx, g.client, addr, &raw); err != nil {
		return nil, err
	}
	var res []quote
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, fmt.Errorf("malformed real-time prices: %w", err)
		}
		return res, nil
	}
	var single quote
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("malformed real-time price: %w", err)
	}
	return append(res, single), nil
}
