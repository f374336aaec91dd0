// internal/services/cart_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/javajoker/storefront-backend/internal/models"
)

func headphonesLine() models.CartLine {
	return models.CartLine{ProductID: "p1", Name: "Headphones", Price: 299.99, Discount: 20, Quantity: 1}
}

func TestCartAddTwiceIncrements(t *testing.T) {
	c := NewCart()
	c.AddItem(headphonesLine())
	c.AddItem(headphonesLine())

	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
	assert.Equal(t, "479.984", c.TotalPrice().String())
}

func TestCartKeepsFirstSnapshot(t *testing.T) {
	c := NewCart()
	c.AddItem(headphonesLine())

	changed := headphonesLine()
	changed.Price = 10
	changed.Quantity = 7
	c.AddItem(changed)

	line := c.Lines()[0]
	assert.Equal(t, 299.99, line.Price)
	assert.Equal(t, 2, line.Quantity)
}

func TestCartUpdateQuantity(t *testing.T) {
	c := NewCart()
	c.AddItem(headphonesLine())

	c.UpdateQuantity("p1", 4)
	assert.Equal(t, 4, c.TotalItems())

	c.UpdateQuantity("p1", 0)
	assert.False(t, c.Contains("p1"))
	assert.Empty(t, c.Lines())

	c.UpdateQuantity("missing", 3)
	assert.Zero(t, c.TotalItems())
}

func TestCartViewTotals(t *testing.T) {
	c := NewCart()
	c.AddItem(headphonesLine())
	assert.True(t, c.ToggleOpen())

	view := c.View("cart-1")
	assert.Equal(t, "cart-1", view.ID)
	assert.Equal(t, 1, view.TotalItems)
	assert.Equal(t, 239.992, view.TotalPrice)
	assert.True(t, view.IsOpen)

	c.Clear()
	view = c.View("cart-1")
	assert.Empty(t, view.Items)
	assert.NotNil(t, view.Items)
	assert.Zero(t, view.TotalPrice)
}

func TestCartInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewCart()
		ids := []string{"a", "b", "c"}
		expected := map[string]int{}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(ids).Draw(t, "id")
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				c.AddItem(models.CartLine{ProductID: id, Price: 10, Discount: 50})
				expected[id]++
			case 1:
				q := rapid.IntRange(-2, 5).Draw(t, "quantity")
				c.UpdateQuantity(id, q)
				if q <= 0 {
					delete(expected, id)
				} else if _, ok := expected[id]; ok {
					expected[id] = q
				}
			case 2:
				c.RemoveItem(id)
				delete(expected, id)
			}
		}

		total := 0
		seen := map[string]bool{}
		for _, l := range c.Lines() {
			if seen[l.ProductID] {
				t.Fatalf("duplicate line for %s", l.ProductID)
			}
			seen[l.ProductID] = true
			if l.Quantity < 1 {
				t.Fatalf("line %s has quantity %d", l.ProductID, l.Quantity)
			}
			if expected[l.ProductID] != l.Quantity {
				t.Fatalf("line %s quantity %d, want %d", l.ProductID, l.Quantity, expected[l.ProductID])
			}
			total += l.Quantity
		}
		if len(seen) != len(expected) {
			t.Fatalf("lines %v, want %v", seen, expected)
		}
		if c.TotalItems() != total {
			t.Fatalf("total items %d, want %d", c.TotalItems(), total)
		}
		if !c.TotalPrice().Equal(c.TotalPrice().Round(2)) {
			t.Fatalf("total price %s not a whole number of cents", c.TotalPrice())
		}
	})
}
