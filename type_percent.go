package invest

import (
	"github.com/shopspring/decimal"
)

// Percent is a ratio times 100. The zero value is not valid.
type Percent struct {
	value decimal.Decimal
	valid bool
}

// P returns a valid percent.
func P(v float64) Percent { return Percent{value: decimal.NewFromFloat(v), valid: true} }

func (p Percent) Valid() bool { return p.valid }

// Float64 returns the percent as a float, 0 if p is not valid.
func (p Percent) Float64() float64 { return p.value.InexactFloat64() }

// Equal compares with some precision, percents are the result of divisions.
func (p Percent) Equal(q Percent) bool {
	if p.valid != q.valid {
		return false
	}
	const precision = 0.0001
	return p.value.Sub(q.value).Abs().LessThan(decimal.NewFromFloat(precision))
}

func (p Percent) String() string {
	if !p.valid {
		return "-"
	}
	return p.value.StringFixed(2) + "%"
}

func (p Percent) SignedString() string {
	if !p.valid {
		return "-"
	}
	res := p.value.StringFixed(2) + "%"
	if p.value.Round(2).IsPositive() {
		res = "+" + res
	}
	return res
}

// MarshalJSON writes the percent as a json number rounded to 4 digits, or null.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return p.value.Round(4).MarshalJSON()
}

func (p *Percent) UnmarshalJSON(b []byte) error {
	p.value, p.valid = unmarshalNumber(b)
	return nil
}
