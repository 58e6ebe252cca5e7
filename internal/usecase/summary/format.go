package summary

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// bigMoney is where whole dollars no longer fit int64 cents.
const bigMoney = 1e15

// finite maps NaN and infinities to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// round2 rounds to cents and folds negative zero into zero.
func round2(v float64) float64 {
	r := math.Round(finite(v)*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

// Money formats v as a signed dollar amount with grouped thousands and two
// decimals: "+$1,234.50", "-$12.00", "$0.00".
func Money(v float64) string {
	r := round2(v)
	sign := ""
	switch {
	case r > 0:
		sign = "+"
	case r < 0:
		sign = "-"
	}
	if math.Abs(r) >= bigMoney {
		return fmt.Sprintf("%s$%s.00", sign, humanize.Commaf(math.Round(math.Abs(r))))
	}
	cents := int64(math.Round(math.Abs(r) * 100))
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// Percent formats v (already scaled to 0-100) with one decimal.
func Percent(v float64) string {
	r := math.Round(finite(v)*10) / 10
	if r == 0 {
		r = 0
	}
	return fmt.Sprintf("%.1f%%", r)
}

// Greek formats an option Greek with an explicit sign and two decimals.
func Greek(v float64) string {
	return fmt.Sprintf("%+.2f", round2(v))
}

// Count formats an integer with grouped thousands.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
