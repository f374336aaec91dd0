// internal/models/product.go
package models

import (
	"time"
)

// PlaceholderImage is used when a product is stored without an image.
const PlaceholderImage = "/placeholder.svg?height=400&width=400"

// Product is the catalog's central entity. ID is assigned by the store on
// creation; CreatedAt and UpdatedAt are stamped by the product service.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Discount    int       `json:"discount"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	Tags        []string  `json:"tags"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DiscountedPrice returns the price after the product's percentage discount.
func (p Product) DiscountedPrice() float64 {
	return DiscountedPrice(p.Price, p.Discount)
}

// HasDiscount reports whether a nonzero discount applies.
func (p Product) HasDiscount() bool {
	return p.Discount > 0
}

// InStock reports whether the product can be purchased.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// IsLowStock reports whether stock is below threshold.
func (p Product) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}

// Snapshot captures the fields a cart line keeps at add time.
func (p Product) Snapshot() CartLine {
	return CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Discount:  p.Discount,
		Quantity:  1,
	}
}

// Clone returns a copy that does not share the tag slice.
func (p Product) Clone() Product {
	out := p
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	return out
}
