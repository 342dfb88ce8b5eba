package invest

// Summary is the portfolio level roll-up of all positions.
type Summary struct {
	Positions   []Valuation
	TotalCost   Money
	MarketValue Money   // sum over positions with a quote
	PnL         Money   // sum over positions with a quote
	PnLPct      Percent // PnL / TotalCost * 100, 0 if TotalCost is 0
}

// Aggregate values each position with its quote and sums them up.
//
// A position without a quote still counts in TotalCost, but adds nothing to
// MarketValue and PnL: a single missing quote does not hide the others.
func Aggregate(positions []Position, quotes Quotes) Summary {
	s := Summary{
		Positions:   make([]Valuation, 0, len(positions)),
		TotalCost:   M(0),
		MarketValue: M(0),
		PnL:         M(0),
	}
	for _, p := range positions {
		v := Valuate(p, quotes.Price(p.Symbol))
		s.Positions = append(s.Positions, v)

		s.TotalCost = s.TotalCost.Add(v.TotalCost)
		if v.MarketValue.Valid() {
			s.MarketValue = s.MarketValue.Add(v.MarketValue)
		}
		if v.PnL.Valid() {
			s.PnL = s.PnL.Add(v.PnL)
		}
	}
	s.PnLPct = P(0)
	if s.TotalCost.IsPositive() {
		s.PnLPct = s.PnL.Percent(s.TotalCost)
	}
	return s
}

// Valuation returns the valuation of symbol in the summary.
func (s Summary) Valuation(symbol string) (Valuation, bool) {
	symbol = NormalizeSymbol(symbol)
	for _, v := range s.Positions {
		if v.Symbol == symbol {
			return v, true
		}
	}
	return Valuation{}, false
}

// MarshalJSON writes the summary with lower camel case keys.
func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("positions", s.Positions)
	w.Append("totalCost", s.TotalCost)
	w.Append("marketValue", s.MarketValue)
	w.Append("pnl", s.PnL)
	w.Append("pnlPct", s.PnLPct)
	return w.MarshalJSON()
}
