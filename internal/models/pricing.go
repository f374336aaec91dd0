// internal/models/pricing.go
package models

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountedPriceDecimal computes price * (1 - discount/100) exactly.
// A discount of zero or less leaves the price unchanged.
func DiscountedPriceDecimal(price float64, discount int) decimal.Decimal {
	base := decimal.NewFromFloat(price)
	if discount <= 0 {
		return base
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(discount))).Div(hundred)
	return base.Mul(factor)
}

// DiscountedPrice is the single formula used by listings, filters, sorting
// and cart totals.
func DiscountedPrice(price float64, discount int) float64 {
	if discount <= 0 {
		return price
	}
	return DiscountedPriceDecimal(price, discount).InexactFloat64()
}
