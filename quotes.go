package invest

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Quotes maps a symbol to its current price. An invalid price, or a missing
// symbol, means the price is unavailable.
type Quotes map[string]Money

// Price returns the quote for symbol, invalid if unavailable.
func (q Quotes) Price(symbol string) Money {
	return q[symbol]
}

// Gateway retrieves current prices.
//
// Implementations resolve per-symbol failures to an unavailable price and
// only return an error when no quote could be requested at all.
type Gateway interface {
	Quotes(ctx context.Context, symbols []string) (Quotes, error)
}

// SymbolSet returns the normalized, sorted and de-duplicated symbols, and the
// identity of that set.
func SymbolSet(symbols []string) (set []string, identity string) {
	set = make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s = NormalizeSymbol(s); s != "" {
			set = append(set, s)
		}
	}
	slices.Sort(set)
	set = slices.Compact(set)
	return set, strings.Join(set, ",")
}

// Board keeps the latest quotes of the symbols currently tracked.
//
// Quote requests can overlap: a response is only kept if the tracked symbols
// did not change while it was in flight.
type Board struct {
	gateway Gateway

	mu       sync.Mutex
	identity string
	quotes   Quotes
}

// NewBoard creates a board fetching quotes from gateway.
func NewBoard(gateway Gateway) *Board {
	return &Board{gateway: gateway, quotes: make(Quotes)}
}

// Track sets the symbols of interest. Quotes of other symbols are forgotten.
func (b *Board) Track(symbols []string) {
	set, identity := SymbolSet(symbols)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.track(set, identity)
}

func (b *Board) track(set []string, identity string) {
	if identity == b.identity {
		return
	}
	b.identity = identity
	kept := make(Quotes, len(set))
	for _, s := range set {
		if q, ok := b.quotes[s]; ok {
			kept[s] = q
		}
	}
	b.quotes = kept
}

// Refresh tracks symbols and requests their quotes.
//
// It returns the response in any case, but only records it if symbols are
// still the tracked ones when it arrives. Symbols missing from the response are
// recorded as unavailable.
func (b *Board) Refresh(ctx context.Context, symbols []string) (Quotes, error) {
	set, identity := SymbolSet(symbols)
	b.mu.Lock()
	b.track(set, identity)
	b.mu.Unlock()

	if len(set) == 0 {
		return make(Quotes), nil
	}
	resp, err := b.gateway.Quotes(ctx, set)
	if err != nil {
		return nil, err
	}
	quotes := make(Quotes, len(set))
	for _, s := range set {
		quotes[s] = resp.Price(s)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.identity != identity {
		log.Debug().Str("symbols", identity).Str("tracked", b.identity).Msg("discarding stale quotes")
		return quotes, nil
	}
	b.quotes = quotes
	return maps.Clone(quotes), nil
}

// Quotes returns a copy of the latest recorded quotes.
func (b *Board) Quotes() Quotes {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.quotes)
}
