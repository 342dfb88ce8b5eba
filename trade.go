package invest

import (
	"fmt"

	"github.com/etnz/invest/date"
)

// Trade is a single buy transaction.
type Trade struct {
	ID     string   `json:"id"`
	Date   string   `json:"date"`   // YYYY-MM-DD
	Price  Money    `json:"price"`  // per share
	Shares Quantity `json:"shares"` // number of shares bought
}

// NewTrade creates a trade without an ID, the ledger assigns one.
func NewTrade(day date.Date, price Money, shares Quantity) Trade {
	return Trade{Date: day.String(), Price: price, Shares: shares}
}

// TradeField names the editable fields of a Trade.
type TradeField string

const (
	FieldDate   TradeField = "date"
	FieldPrice  TradeField = "price"
	FieldShares TradeField = "shares"
)

// ParseTradeField parses an editable field name.
func ParseTradeField(s string) (TradeField, error) {
	switch f := TradeField(s); f {
	case FieldDate, FieldPrice, FieldShares:
		return f, nil
	default:
		return "", fmt.Errorf("unknown trade field %q, want one of %q, %q or %q", s, FieldDate, FieldPrice, FieldShares)
	}
}

// counted reports whether the trade takes part in valuations.
// Trades with a malformed price or share count are skipped.
func (t Trade) counted() bool { return t.Price.Valid() && t.Shares.Valid() }

// edit applies a raw user input to a field.
//
// Numeric fields keep their previous value when raw is not a finite number,
// so that a bad keystroke cannot destroy a record. Dates are taken as is.
func (t Trade) edit(field TradeField, raw string) Trade {
	switch field {
	case FieldPrice:
		if v, ok := ParseMoney(raw); ok {
			t.Price = v
		}
	case FieldShares:
		if v, ok := ParseQuantity(raw); ok {
			t.Shares = v
		}
	case FieldDate:
		t.Date = raw
	}
	return t
}
