// internal/store/storetest/contract.go
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

// Harness describes a backend under test. NewBackend must return an empty
// backend; MissingID returns a well-formed identifier that matches nothing.
type Harness struct {
	NewBackend func(t *testing.T) *store.Backend
	MissingID  func() string
}

func sampleProduct(name string, createdAt time.Time) models.Product {
	return models.Product{
		Name:        name,
		Price:       19.99,
		Image:       models.PlaceholderImage,
		Description: name + " description",
		Category:    "Electronics",
		Discount:    10,
		Stock:       5,
		Rating:      4.0,
		Tags:        []string{"New"},
		Approved:    true,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// Run exercises the behaviour every backend must share.
func Run(t *testing.T, h Harness) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ping reports connected", func(t *testing.T) {
		b := h.NewBackend(t)
		status := b.Gateway.Ping(context.Background())
		assert.True(t, status.Connected)
		assert.Nil(t, status.Error)
		assert.True(t, b.Gateway.Configured())
	})

	t.Run("find returns newest first with public ids", func(t *testing.T) {
		ctx := context.Background()
		b := h.NewBackend(t)

		older := sampleProduct("Older", base)
		newer := sampleProduct("Newer", base.Add(time.Hour))
		ids, err := b.Products.InsertMany(ctx, []models.Product{older, newer})
		require.NoError(t, err)
		require.Len(t, ids, 2)

		products, err := b.Products.Find(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Newer", products[0].Name)
		assert.Equal(t, ids[1], products[0].ID)
		assert.Equal(t, "Older", products[1].Name)
		assert.Equal(t, ids[0], products[1].ID)
		assert.Equal(t, []string{"New"}, products[0].Tags)
	})

	t.Run("insert one then find by id", func(t *testing.T) {
		ctx := context.Background()
		b := h.NewBackend(t)

		p := sampleProduct("Lens", base)
		id, err := b.Products.InsertOne(ctx, &p)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		got, err := b.Products.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Lens", got.Name)
		assert.InDelta(t, 19.99, got.Price, 1e-9)
		assert.Equal(t, 10, got.Discount)
		assert.True(t, got.CreatedAt.Equal(base))

		count, err := b.Products.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("malformed and missing ids", func(t *testing.T) {
		ctx := context.Background()
		b := h.NewBackend(t)

		_, err := b.Products.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, models.ErrInvalidID)

		_, err = b.Products.FindByID(ctx, h.MissingID())
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = b.Products.DeleteOne(ctx, "not-an-id")
		assert.ErrorIs(t, err, models.ErrInvalidID)

		matched, err := b.Products.UpdateOne(ctx, h.MissingID(), models.ProductPatch{}, base)
		require.NoError(t, err)
		assert.Zero(t, matched)

		deleted, err := b.Products.DeleteOne(ctx, h.MissingID())
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("update merges fields and stamps updatedAt", func(t *testing.T) {
		ctx := context.Background()
		b := h.NewBackend(t)

		p := sampleProduct("Chair", base)
		id, err := b.Products.InsertOne(ctx, &p)
		require.NoError(t, err)

		approved := false
		stock := 0
		updatedAt := base.Add(2 * time.Hour)
		matched, err := b.Products.UpdateOne(ctx, id, models.ProductPatch{Approved: &approved, Stock: &stock}, updatedAt)
		require.NoError(t, err)
		assert.Equal(t, int64(1), matched)

		got, err := b.Products.FindByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, got.Approved)
		assert.Equal(t, 0, got.Stock)
		assert.Equal(t, "Chair", got.Name)
		assert.True(t, got.UpdatedAt.Equal(updatedAt))
		assert.True(t, got.CreatedAt.Equal(base))
	})

	t.Run("delete removes the document", func(t *testing.T) {
		ctx := context.Background()
		b := h.NewBackend(t)

		p := sampleProduct("Speaker", base)
		id, err := b.Products.InsertOne(ctx, &p)
		require.NoError(t, err)

		deleted, err := b.Products.DeleteOne(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		_, err = b.Products.FindByID(ctx, id)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("sessions expire", func(t *testing.T) {
		ctx := context.Background()
		b := h.NewBackend(t)

		session := &models.Session{
			SessionID: "3b0d4c1e-6b39-4a39-9d3b-1f1f5c0b2a10",
			Username:  "admin",
			CreatedAt: base,
			ExpiresAt: base.Add(time.Hour),
		}
		require.NoError(t, b.Sessions.Create(ctx, session))

		got, err := b.Sessions.FindActive(ctx, session.SessionID, base.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, "admin", got.Username)

		_, err = b.Sessions.FindActive(ctx, session.SessionID, base.Add(2*time.Hour))
		assert.ErrorIs(t, err, models.ErrSessionNotFound)

		purged, err := b.Sessions.PurgeExpired(ctx, base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), purged)
	})

	t.Run("logout deletes the session", func(t *testing.T) {
		ctx := context.Background()
		b := h.NewBackend(t)

		session := &models.Session{
			SessionID: "9a1e2d5f-0c4b-4f8e-a0a2-6a3c7e9b1d22",
			Username:  "admin",
			CreatedAt: base,
			ExpiresAt: base.Add(time.Hour),
		}
		require.NoError(t, b.Sessions.Create(ctx, session))
		require.NoError(t, b.Sessions.Delete(ctx, session.SessionID))

		_, err := b.Sessions.FindActive(ctx, session.SessionID, base)
		assert.ErrorIs(t, err, models.ErrSessionNotFound)
	})

	t.Run("setup is idempotent", func(t *testing.T) {
		ctx := context.Background()
		b := h.NewBackend(t)

		first, err := b.Migrator.Setup(ctx)
		require.NoError(t, err)
		assert.Len(t, first.Collections, 3)

		second, err := b.Migrator.Setup(ctx)
		require.NoError(t, err)
		for name, state := range second.Collections {
			assert.Equal(t, store.CollectionExisting, state, name)
		}
	})

	t.Run("uploads are recorded", func(t *testing.T) {
		b := h.NewBackend(t)
		err := b.Uploads.Record(context.Background(), &models.Upload{
			Key:       "products/a.png",
			URL:       "/uploads/products/a.png",
			FileName:  "a.png",
			Size:      42,
			MimeType:  "image/png",
			CreatedAt: base,
		})
		assert.NoError(t, err)
	})
}
