package renderer

import "github.com/etnz/invest"

// Trades is the data of the trades report of a position.
type Trades struct {
	Currency  string
	Position  invest.Position
	Valuation invest.Valuation
}

// RenderTrades renders the trades of a position, with its cost basis.
func RenderTrades(t *Trades) string {
	return render("trades", t.Currency, t)
}
