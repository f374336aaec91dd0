// internal/store/memstore/memstore_test.go
package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, storetest.Harness{
		NewBackend: func(t *testing.T) *store.Backend { return New().Backend() },
		MissingID:  uuid.NewString,
	})
}

func TestUnavailableStoreCountsCalls(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.SetAvailable(false)

	status := s.Ping(ctx)
	assert.False(t, status.Connected)
	assert.Zero(t, s.Calls())

	_, err := s.Find(ctx)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Equal(t, int64(1), s.Calls())

	s.SetAvailable(true)
	_, err = s.Find(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Calls())
}

func TestReturnedProductsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	p := models.Product{Name: "Shirt", Tags: []string{"Eco"}, CreatedAt: time.Now()}
	id, err := s.InsertOne(ctx, &p)
	require.NoError(t, err)

	got, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	got.Tags[0] = "changed"

	again, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eco"}, again.Tags)
	assert.Empty(t, p.ID)
}
