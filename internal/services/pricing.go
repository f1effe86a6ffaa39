package services

import "github.com/shopspring/decimal"

// UnitPrice applies a color's fractional modifier to the base price:
// base * (1 + modifier), rounded to 2 decimals.
func UnitPrice(base, modifier float64) float64 {
	p := decimal.NewFromFloat(base).
		Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(modifier)))
	f, _ := p.Round(2).Float64()
	return f
}

func lineSubtotal(unit float64, qty int) decimal.Decimal {
	return decimal.NewFromFloat(unit).Mul(decimal.NewFromInt(int64(qty)))
}
