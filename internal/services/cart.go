// internal/services/cart.go
package services

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/javajoker/storefront-backend/internal/models"
)

// Cart is one shopper's line items. Lines are snapshots taken at add time
// and keep their first-add price and discount.
type Cart struct {
	mu       sync.Mutex
	lines    []models.CartLine
	open     bool
	lastSeen time.Time
}

type CartView struct {
	ID         string            `json:"id"`
	Items      []models.CartLine `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
	IsOpen     bool              `json:"isOpen"`
}

func NewCart() *Cart {
	return &Cart{lines: []models.CartLine{}}
}

func (c *Cart) indexLocked(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem increments an existing line or appends a new one with quantity 1.
func (c *Cart) AddItem(snapshot models.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexLocked(snapshot.ProductID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	snapshot.Quantity = 1
	c.lines = append(c.lines, snapshot)
}

// UpdateQuantity sets the quantity directly. Zero or less removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexLocked(productID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexLocked(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Contains reports whether a line exists for productID.
func (c *Cart) Contains(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexLocked(productID) >= 0
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = []models.CartLine{}
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalItemsLocked()
}

func (c *Cart) totalItemsLocked() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums discounted price times quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPriceLocked()
}

func (c *Cart) totalPriceLocked() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ToggleOpen flips the visibility flag and returns the new value.
func (c *Cart) ToggleOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = !c.open
	return c.open
}

func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartLine{}, c.lines...)
}

func (c *Cart) touch(now time.Time) {
	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()
}

func (c *Cart) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

// View renders the cart for id.
func (c *Cart) View(id string) CartView {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CartView{
		ID:         id,
		Items:      append([]models.CartLine{}, c.lines...),
		TotalItems: c.totalItemsLocked(),
		TotalPrice: c.totalPriceLocked().InexactFloat64(),
		IsOpen:     c.open,
	}
}
