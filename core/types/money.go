package types

import (
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// FormatK renders an amount in thousands the way the shop quotes prices:
// 90000 -> "90k", 1200 -> "1.2k", 950 -> "950".
func FormatK(amount int64) string {
	d := decimal.NewFromInt(amount)
	if d.Abs().LessThan(thousand) {
		return d.String()
	}
	return d.Div(thousand).Round(1).String() + "k"
}

// FormatKRounded renders an amount in whole thousands, rounding half away from zero.
func FormatKRounded(amount int64) string {
	d := decimal.NewFromInt(amount)
	if d.Abs().LessThan(thousand) {
		return d.String()
	}
	return d.Div(thousand).Round(0).String() + "k"
}
