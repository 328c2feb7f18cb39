// Package price computes the tax and total for a single line, in exact
// decimal arithmetic so repeated cart updates never drift by fractions of a
// cent.
package price

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Quote stamps a unit price with its tax fee and total. rate is a percentage
// (10 means 10%).
func Quote(unit decimal.Decimal, rate decimal.Decimal) (taxFee, total decimal.Decimal) {
	taxFee = unit.Mul(rate).Div(hundred)
	total = unit.Add(taxFee)
	return taxFee, total
}

// MinorUnits converts an amount into integer minor units (cents) as the
// payment gateways expect, rounding halves away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
