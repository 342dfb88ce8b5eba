package invest

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used to display Money.
//
// Amounts are never converted: all prices are assumed to be in the same currency.
const DefaultCurrency = "USD"

// Money represents a monetary value.
//
// The zero value is not a valid amount: it stands for a missing price, or for
// a figure that cannot be computed (like a market value without a quote).
type Money struct {
	value decimal.Decimal // as major unit value
	valid bool
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value), valid: true}
}

// ParseMoney parses a user typed amount. ok is false if raw is not a finite number.
func ParseMoney(raw string) (m Money, ok bool) {
	v, ok := parseNumber(raw)
	if !ok {
		return Money{}, false
	}
	return Money{value: v, valid: true}, true
}

// Valid reports whether m holds an amount.
func (m Money) Valid() bool { return m.valid }

// Decimal returns the underlying value, zero if m is not valid.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool   { return m.valid == n.valid && m.value.Equal(n.value) }
func (m Money) IsZero() bool         { return m.valid && m.value.IsZero() }
func (m Money) IsPositive() bool     { return m.valid && m.value.IsPositive() }
func (m Money) IsNegative() bool     { return m.valid && m.value.IsNegative() }
func (m Money) Neg() Money           { return Money{value: m.value.Neg(), valid: m.valid} }
func (m Money) Add(n Money) Money    { return Money{value: m.value.Add(n.value), valid: m.valid && n.valid} }
func (m Money) Sub(n Money) Money    { return Money{value: m.value.Sub(n.value), valid: m.valid && n.valid} }
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value), valid: m.valid && q.valid} }

// Div divides m by a quantity. The result is not valid when q is zero.
func (m Money) Div(q Quantity) Money {
	if !q.valid || q.value.IsZero() {
		return Money{}
	}
	return Money{value: m.value.Div(q.value), valid: m.valid}
}

// Percent returns m as a percentage of base. The result is not valid when base is zero.
func (m Money) Percent(base Money) Percent {
	if !base.valid || base.value.IsZero() {
		return Percent{}
	}
	return Percent{value: m.value.Div(base.value).Shift(2), valid: m.valid}
}

// Or returns m if it is valid, otherwise def.
func (m Money) Or(def Money) Money {
	if m.valid {
		return m
	}
	return def
}

// Format returns m formatted in the given currency, "-" if m is not valid.
func (m Money) Format(currency string) string {
	if !m.valid {
		return "-"
	}
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	if dec.Abs().LessThanOrEqual(maxMinorUnits) {
		return cur.Formatter().Format(dec.IntPart())
	}
	return formatLarge(m.value.Round(int32(cur.Fraction)), cur.Formatter())
}

// maxMinorUnits is the largest amount, in cents, go-money can format.
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// formatLarge lays out amounts beyond the int64 range the way go-money does.
func formatLarge(d decimal.Decimal, f *money.Formatter) string {
	digits := d.Abs().StringFixed(int32(f.Fraction))
	integer, fraction, _ := strings.Cut(digits, ".")
	var b strings.Builder
	for i, r := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteString(f.Thousand)
		}
		b.WriteRune(r)
	}
	if fraction != "" {
		b.WriteString(f.Decimal)
		b.WriteString(fraction)
	}
	s := strings.Replace(f.Template, "1", b.String(), 1)
	s = strings.Replace(s, "$", f.Grapheme, 1)
	if d.IsNegative() {
		s = "-" + s
	}
	return s
}

// String returns the string representation of the money value.
func (m Money) String() string { return m.Format(DefaultCurrency) }

// SignedString returns the string representation of the money value with a sign.
func (m Money) SignedString() string {
	if m.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON writes the amount as a json number, or null.
func (m Money) MarshalJSON() ([]byte, error) {
	if !m.valid {
		return []byte("null"), nil
	}
	return m.value.MarshalJSON()
}

// UnmarshalJSON never fails, invalid numbers are kept as invalid amounts.
func (m *Money) UnmarshalJSON(b []byte) error {
	m.value, m.valid = unmarshalNumber(b)
	return nil
}
