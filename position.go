package invest

import (
	"slices"
	"strings"
)

// Position is the holding in one symbol, made of one or more trades.
//
// Trades are kept in insertion order, not date order.
type Position struct {
	Symbol string  `json:"symbol"`
	Trades []Trade `json:"trades"`
}

// NormalizeSymbol returns the canonical form of a ticker: trimmed and uppercase.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Trade returns the trade with this id.
func (p Position) Trade(id string) (Trade, bool) {
	i := p.index(id)
	if i < 0 {
		return Trade{}, false
	}
	return p.Trades[i], true
}

func (p Position) index(id string) int {
	return slices.IndexFunc(p.Trades, func(t Trade) bool { return t.ID == id })
}

// clone returns a copy that does not share the trades slice.
func (p Position) clone() Position {
	p.Trades = slices.Clone(p.Trades)
	return p
}
