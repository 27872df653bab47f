package pricing

import "github.com/shopspring/decimal"

// ConvertUSD derives the displayable currency pair from one canonical USD
// amount: USD rounded to 2 decimals, ARS computed from the rounded USD at
// the global rate and rounded to whole pesos. Neither side is ever set
// independently of the other.
func ConvertUSD(usd, rate float64) (usdRounded, ars float64) {
	d := decimal.NewFromFloat(usd).Round(2)
	a := d.Mul(decimal.NewFromFloat(rate)).Round(0)
	return d.InexactFloat64(), a.InexactFloat64()
}
