package renderer

import (
	"github.com/etnz/invest"
	"github.com/etnz/invest/date"
)

// Holding is the data of the holding report.
type Holding struct {
	Date     date.Date
	Currency string
	Summary  invest.Summary
	// Missing lists the held symbols without a quote.
	Missing []string
	// Offline is set when quotes were not requested at all.
	Offline bool
}

// NewHolding prepares the holding report of a summary.
func NewHolding(on date.Date, currency string, s invest.Summary, offline bool) *Holding {
	h := &Holding{Date: on, Currency: currency, Summary: s, Offline: offline}
	if offline {
		return h
	}
	for _, v := range s.Positions {
		if v.TotalShares.IsPositive() && !v.Price.Valid() {
			h.Missing = append(h.Missing, v.Symbol)
		}
	}
	return h
}

// RenderHolding renders the positions, their valuation and the portfolio totals.
func RenderHolding(h *Holding) string {
	return render("holding", h.Currency, h)
}
