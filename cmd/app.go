// Package cmd implements the invest command line: a ledger of stock
// positions, their valuation, and advice on them.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/invest"
	"github.com/etnz/invest/eodhd"
	"github.com/etnz/invest/finnhub"
	"github.com/etnz/invest/store"
	"github.com/google/subcommands"
)

// commands lists the subcommands by group.
var commands = []struct {
	group string
	cmd   subcommands.Command
}{
	{"positions", &addCmd{}},
	{"positions", &editCmd{}},
	{"positions", &rmCmd{}},
	{"positions", &dropCmd{}},

	{"reports", &holdingCmd{}},
	{"reports", &tradesCmd{}},
	{"reports", &quoteCmd{}},

	{"advice", &planCmd{}},
	{"advice", &adoptCmd{}},
	{"advice", &newsCmd{}},

	{"", &serveCmd{}},
	{"", &topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
//
// Flags left empty fall back to their environment variable, read once .env
// files are loaded.

var storeURI = flag.String("store", "", "Where the ledger is kept: file:<dir>, sqlite:<path> or memory:. Defaults to $INVEST_STORE or file:.invest")
var quotesProvider = flag.String("quotes", "", "Quote provider: finnhub, eodhd or none. Defaults to $INVEST_QUOTES or finnhub")
var finnhubAPIKey = flag.String("finnhub-api-key", "", "Finnhub API key. Defaults to $FINNHUB_API_KEY")
var eodhdAPIKey = flag.String("eodhd-api-key", "", "EODHD API key. Defaults to $EODHD_API_KEY")
var currency = flag.String("currency", "", "Currency used to display amounts. Defaults to $INVEST_CURRENCY or USD")

// setting returns the flag value, or the env variable, or def.
func setting(value *string, env, def string) string {
	if v := strings.TrimSpace(*value); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return def
}

func displayCurrency() string { return setting(currency, EnvCurrency, invest.DefaultCurrency) }

// openStore opens the app store.
func openStore() (store.Store, error) {
	return store.Open(setting(storeURI, EnvStore, "file:.invest"))
}

// openLedger opens the app store and loads the ledger from it. The store must
// be closed by the caller.
func openLedger(ctx context.Context) (*invest.Ledger, store.Store, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	l, err := invest.OpenLedger(ctx, s)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return l, s, nil
}

// errNoQuotes is returned by quoteGateway when quotes are turned off.
var errNoQuotes = errors.New("quotes are turned off (-quotes=none)")

// quoteGateway returns the configured quote provider.
func quoteGateway() (invest.Gateway, error) {
	switch p := setting(quotesProvider, EnvQuotes, "finnhub"); p {
	case "finnhub":
		return finnhubClient()
	case "eodhd":
		key := setting(eodhdAPIKey, "EODHD_API_KEY", "")
		if key == "" {
			return nil, eodhd.ErrMissingAPIKey
		}
		return eodhd.New(key), nil
	case "none":
		return nil, errNoQuotes
	default:
		return nil, fmt.Errorf("unknown quote provider %q, want finnhub, eodhd or none", p)
	}
}

// finnhubClient returns the Finnhub client, also used for company news.
func finnhubClient() (*finnhub.Client, error) {
	key := setting(finnhubAPIKey, "FINNHUB_API_KEY", "")
	if key == "" {
		return nil, finnhub.ErrMissingAPIKey
	}
	return finnhub.New(key), nil
}
