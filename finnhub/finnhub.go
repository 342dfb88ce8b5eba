// Package finnhub is a client of the Finnhub market data API.
//
// It implements the invest.Gateway for current prices, and retrieves company
// news.
package finnhub

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/invest"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the Finnhub API root.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// ErrMissingAPIKey is returned by any request made without an API key.
var ErrMissingAPIKey = errors.New("finnhub: missing API key")

// Client calls the Finnhub API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	// cached serves slow moving data, like news, from a daily disk cache.
	cached *http.Client
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL  string
	http     *http.Client
	cacheDir string
}

// WithBaseURL sets the API root, to use a proxy or a test server.
func WithBaseURL(u string) Option { return func(o *clientOptions) { o.baseURL = u } }

// WithHTTPClient sets the http client used for all requests.
func WithHTTPClient(c *http.Client) Option { return func(o *clientOptions) { o.http = c } }

// WithCacheDir sets the directory of the daily cache.
func WithCacheDir(dir string) Option { return func(o *clientOptions) { o.cacheDir = dir } }

// New creates a client. An empty apiKey is accepted, but every request fails
// with ErrMissingAPIKey.
func New(apiKey string, opts ...Option) *Client {
	o := clientOptions{
		baseURL:  DefaultBaseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		cacheDir: filepath.Join(os.TempDir(), "invest-cache"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: o.baseURL,
		http:    o.http,
		cached:  daily(o.http, o.cacheDir),
	}
}

func (c *Client) url(path string, query url.Values) string {
	query.Set("token", c.apiKey)
	return c.baseURL + path + "?" + query.Encode()
}

// Quotes retrieves the last price of each symbol, concurrently.
//
// A symbol whose price cannot be retrieved is mapped to an invalid price, and
// does not fail the others. An empty symbol list is answered without any
// request.
func (c *Client) Quotes(ctx context.Context, symbols []string) (invest.Quotes, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	quotes := make(invest.Quotes, len(symbols))
	if len(symbols) == 0 {
		return quotes, nil
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, symbol := range symbols {
		wg.Add(1)
		go func() {
			defer wg.Done()
			price, err := c.Quote(ctx, symbol)
			if err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Msg("quote unavailable")
			}
			mu.Lock()
			quotes[symbol] = price
			mu.Unlock()
		}()
	}
	wg.Wait()
	return quotes, nil
}

// Quote retrieves the last price of a single symbol.
//
// Finnhub answers unknown symbols with a price of 0, this is reported as an
// error.
func (c *Client) Quote(ctx context.Context, symbol string) (invest.Money, error) {
	if c.apiKey == "" {
		return invest.Money{}, ErrMissingAPIKey
	}
	var jobj any
	if err := jwget(ctx, c.http, c.url("/quote", url.Values{"symbol": {symbol}}), &jobj); err != nil {
		return invest.Money{}, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	const path = "$.c"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return invest.Money{}, fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	val, ok := jval.(float64)
	if !ok || math.IsNaN(val) || math.IsInf(val, 0) {
		return invest.Money{}, fmt.Errorf("error parsing %q: %q not a number: %v", symbol, path, jval)
	}
	if val == 0 {
		return invest.Money{}, fmt.Errorf("no price for %q", symbol)
	}
	return invest.M(val), nil
}
