package invest

// Valuation holds the figures of a position, derived from its trades and an
// optional quote. Figures that cannot be computed are not valid.
type Valuation struct {
	Symbol       string
	EarliestDate string   // date of the oldest trade, empty if unknown
	TotalShares  Quantity // sum of shares
	TotalCost    Money    // sum of price * shares
	AvgPrice     Money    // TotalCost / TotalShares, if TotalShares > 0
	Price        Money    // the quote used, if any
	MarketValue  Money    // Price * TotalShares, if there is a quote and TotalShares > 0
	PnL          Money    // MarketValue - TotalCost
	PnLPct       Percent  // PnL / TotalCost * 100, if TotalCost > 0
}

// Valuate computes the valuation of a position at a given price.
//
// price may be invalid (Money{}) when no quote is available. Trades with a
// malformed price or share count are ignored. The cost basis is the weighted
// average over all trades.
func Valuate(p Position, price Money) Valuation {
	v := Valuation{
		Symbol:      p.Symbol,
		TotalShares: Q(0),
		TotalCost:   M(0),
		Price:       price,
	}

	for _, t := range p.Trades {
		if !t.counted() {
			continue
		}
		v.TotalShares = v.TotalShares.Add(t.Shares)
		v.TotalCost = v.TotalCost.Add(t.Price.Mul(t.Shares))
		// dates are YYYY-MM-DD, the lexicographic order is the chronological order.
		if t.Date != "" && (v.EarliestDate == "" || t.Date < v.EarliestDate) {
			v.EarliestDate = t.Date
		}
	}

	if !v.TotalShares.IsPositive() {
		return v
	}
	v.AvgPrice = v.TotalCost.Div(v.TotalShares)

	if !price.Valid() {
		return v
	}
	v.MarketValue = price.Mul(v.TotalShares)
	v.PnL = v.MarketValue.Sub(v.TotalCost)
	if v.TotalCost.IsPositive() {
		v.PnLPct = v.PnL.Percent(v.TotalCost)
	}
	return v
}

// MarshalJSON writes absent figures as null.
func (v Valuation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", v.Symbol)
	w.Optional("earliestDate", v.EarliestDate)
	w.Append("totalShares", v.TotalShares)
	w.Append("totalCost", v.TotalCost)
	w.Append("avgPrice", v.AvgPrice)
	w.Append("price", v.Price)
	w.Append("marketValue", v.MarketValue)
	w.Append("pnl", v.PnL)
	w.Append("pnlPct", v.PnLPct)
	return w.MarshalJSON()
}
