package renderer

import "github.com/etnz/invest"

// Quote is a row of the quotes table.
type Quote struct {
	Symbol string
	Price  invest.Money
}

// RenderQuotes renders prices in the order of symbols.
func RenderQuotes(currency string, symbols []string, quotes invest.Quotes) string {
	rows := make([]Quote, len(symbols))
	for i, s := range symbols {
		rows[i] = Quote{Symbol: s, Price: quotes.Price(s)}
	}
	return render("quotes", currency, rows)
}
