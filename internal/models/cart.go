// internal/models/cart.go
package models

import "github.com/shopspring/decimal"

// CartLine is a snapshot of a product taken when it was first added to a
// cart. Later product edits are not reflected.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Discount  int     `json:"discount"`
	Quantity  int     `json:"quantity"`
}

func (l CartLine) DiscountedPrice() float64 {
	return DiscountedPrice(l.Price, l.Discount)
}

// Subtotal is the discounted unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return DiscountedPriceDecimal(l.Price, l.Discount).Mul(decimal.NewFromInt(int64(l.Quantity)))
}
