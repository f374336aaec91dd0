// internal/store/mongostore/mongostore_test.go
package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/store/storetest"
)

func TestContract(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	storetest.Run(t, storetest.Harness{
		NewBackend: func(t *testing.T) *store.Backend {
			ctx := context.Background()
			dbName := fmt.Sprintf("storefront_test_%d", time.Now().UnixNano())
			s, err := Open(ctx, uri, dbName, 10*time.Second)
			require.NoError(t, err)
			t.Cleanup(func() {
				_ = s.Database().Drop(context.Background())
				_ = s.Close(context.Background())
			})
			return s.Backend()
		},
		MissingID: func() string { return primitive.NewObjectID().Hex() },
	})
}

func TestProductDocumentExposesHexID(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	p := productDocument{ID: oid, Name: "Watch", CreatedAt: created}.toModel()

	assert.Equal(t, oid.Hex(), p.ID)
	assert.Equal(t, []string{}, p.Tags)
	assert.True(t, p.UpdatedAt.Equal(created))
}

func TestNewProductDocumentLeavesIDToServer(t *testing.T) {
	doc := newProductDocument(&models.Product{ID: "ignored", Name: "Lens"})

	assert.True(t, doc.ID.IsZero())
	assert.Equal(t, []string{}, doc.Tags)
}

func TestParseObjectID(t *testing.T) {
	_, err := parseObjectID("not-an-id")
	assert.ErrorIs(t, err, models.ErrInvalidID)

	oid := primitive.NewObjectID()
	parsed, err := parseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)
}

func TestWrapClassifiesConnectivity(t *testing.T) {
	err := wrap("find products", context.DeadlineExceeded)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)

	err = wrap("find products", fmt.Errorf("duplicate key"))
	assert.NotErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Nil(t, wrap("noop", nil))
}
