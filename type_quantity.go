package invest

import (
	"bytes"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// maxScale is the finest decimal place a number may carry.
const maxScale = 18

// finite reports whether d is a finite float64 with at most maxScale decimal
// places. The exponent is checked first, so that huge ones are never expanded.
func finite(d decimal.Decimal) bool {
	if exp := d.Exponent(); exp < -maxScale || exp > 308 {
		return false
	}
	f, _ := d.Float64()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// parseNumber reads a user typed number.
//
// It reports false for anything that is not a finite number, including the
// empty string, and for numbers finer than maxScale decimal places.
func parseNumber(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !finite(d) {
		return decimal.Zero, false
	}
	return d, true
}

// unmarshalNumber reads a json number, leniently.
//
// null, or any value that is not a number, is reported as invalid instead of
// failing the whole document.
func unmarshalNumber(b []byte) (decimal.Decimal, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return decimal.Zero, false
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil || !finite(d) {
		return decimal.Zero, false
	}
	return d, true
}

// Quantity is a number of shares.
//
// The zero value is not a valid quantity: it stands for a missing or
// malformed number.
type Quantity struct {
	value decimal.Decimal
	valid bool
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value), valid: true}
}

// ParseQuantity parses a user typed quantity. ok is false if raw is not a finite number.
func ParseQuantity(raw string) (q Quantity, ok bool) {
	v, ok := parseNumber(raw)
	if !ok {
		return Quantity{}, false
	}
	return Quantity{value: v, valid: true}, true
}

// Valid reports whether q holds a number.
func (q Quantity) Valid() bool { return q.valid }

// Decimal returns the underlying value, zero if q is not valid.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

func (q Quantity) Equal(p Quantity) bool { return q.valid == p.valid && q.value.Equal(p.value) }
func (q Quantity) IsPositive() bool      { return q.valid && q.value.IsPositive() }
func (q Quantity) IsZero() bool          { return q.valid && q.value.IsZero() }
func (q Quantity) Add(p Quantity) Quantity {
	return Quantity{value: q.value.Add(p.value), valid: q.valid && p.valid}
}
func (q Quantity) Sub(p Quantity) Quantity {
	return Quantity{value: q.value.Sub(p.value), valid: q.valid && p.valid}
}

// String returns the quantity, or "-" if it is not valid.
func (q Quantity) String() string {
	if !q.valid {
		return "-"
	}
	return q.value.String()
}

// MarshalJSON writes the quantity as a json number, or null.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.valid {
		return []byte("null"), nil
	}
	return q.value.MarshalJSON()
}

// UnmarshalJSON never fails, invalid numbers are kept as invalid quantities.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	q.value, q.valid = unmarshalNumber(b)
	return nil
}
