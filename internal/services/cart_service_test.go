// internal/services/cart_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
)

func newCartFixture(t *testing.T) (*fixture, *CartService) {
	t.Helper()
	f := newSeededFixture(t)
	return f, NewCartService(f.catalog, f.clock, time.Hour)
}

func TestCartServiceAssignsIDs(t *testing.T) {
	_, carts := newCartFixture(t)

	id, _ := carts.Cart("not-a-uuid")
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	same, _ := carts.Cart(id)
	assert.Equal(t, id, same)
	assert.Equal(t, 1, carts.Len())
}

func TestCartServiceAddProduct(t *testing.T) {
	f, carts := newCartFixture(t)
	headphones := f.productByName(t, "Premium Wireless Headphones")

	view, err := carts.AddProduct("", headphones.ID)
	require.NoError(t, err)
	view, err = carts.AddProduct(view.ID, headphones.ID)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 2, view.TotalItems)
	assert.Equal(t, 479.984, view.TotalPrice)
}

func TestCartServiceRejectsHiddenAndUnknown(t *testing.T) {
	ctx := context.Background()
	f, carts := newCartFixture(t)
	speaker := f.productByName(t, "Bluetooth Speaker")
	_, err := f.catalog.ToggleApproval(ctx, speaker.ID)
	require.NoError(t, err)

	view, err := carts.AddProduct("", speaker.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, view.Items)

	_, err = carts.AddProduct(view.ID, uuid.NewString())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCartServiceRejectsOutOfStock(t *testing.T) {
	ctx := context.Background()
	f, carts := newCartFixture(t)
	mat := f.productByName(t, "Yoga Mat Premium")
	_, err := f.catalog.UpdateProduct(ctx, mat.ID, &models.ProductPatch{Stock: intPtr(0)})
	require.NoError(t, err)

	_, err = carts.AddProduct("", mat.ID)
	assert.ErrorIs(t, err, models.ErrOutOfStock)
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	f, carts := newCartFixture(t)
	bottle := f.productByName(t, "Stainless Steel Water Bottle")

	view, err := carts.AddProduct("", bottle.ID)
	require.NoError(t, err)
	id := view.ID

	view, err = carts.UpdateQuantity(id, bottle.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalItems)

	_, err = carts.UpdateQuantity(id, uuid.NewString(), 2)
	assert.ErrorIs(t, err, models.ErrNotFound)

	view, err = carts.UpdateQuantity(id, bottle.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = carts.AddProduct(id, bottle.ID)
	require.NoError(t, err)
	view = carts.RemoveItem(id, bottle.ID)
	assert.Zero(t, view.TotalItems)
}

func TestCartServiceToggleAndClear(t *testing.T) {
	f, carts := newCartFixture(t)
	bottle := f.productByName(t, "Stainless Steel Water Bottle")

	view, err := carts.AddProduct("", bottle.ID)
	require.NoError(t, err)

	assert.True(t, carts.Toggle(view.ID).IsOpen)
	assert.False(t, carts.Toggle(view.ID).IsOpen)

	cleared := carts.Clear(view.ID)
	assert.Empty(t, cleared.Items)
	assert.Equal(t, view.ID, carts.View(view.ID).ID)
}

func TestCartServiceEvictsIdleCarts(t *testing.T) {
	f, carts := newCartFixture(t)

	old, _ := carts.Cart("")
	f.clock.Advance(50 * time.Minute)
	fresh, _ := carts.Cart("")
	f.clock.Advance(20 * time.Minute)

	assert.Equal(t, 1, carts.EvictIdle())
	assert.Equal(t, 1, carts.Len())

	// A revisited id starts over with an empty cart.
	view := carts.View(old)
	assert.Empty(t, view.Items)
	assert.NotEqual(t, old, fresh)
}
