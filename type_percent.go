package stockkeeper

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a rate already multiplied by 100 (12.5 means 12.5%).
type Percent float64

func percentOf(d decimal.Decimal) Percent { return Percent(d.InexactFloat64()) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.1f%%", p)
	if res == "+0.0%" || res == "-0.0%" {
		return "0.0%"
	}
	return res
}
