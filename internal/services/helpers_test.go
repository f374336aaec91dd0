// internal/services/helpers_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store/memstore"
	"github.com/javajoker/storefront-backend/internal/utils"
)

var testEpoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	mem      *memstore.Store
	clock    *utils.FakeClock
	products *ProductService
	catalog  *CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mem := memstore.New()
	clock := utils.NewFakeClock(testEpoch)
	products := NewProductService(mem, mem, clock)
	return &fixture{
		mem:      mem,
		clock:    clock,
		products: products,
		catalog:  NewCatalogService(products, mem, clock, 10),
	}
}

// seeded returns a fixture with the sample catalog loaded into the cache.
func newSeededFixture(t *testing.T) *fixture {
	t.Helper()

	f := newFixture(t)
	_, err := f.products.SeedIfEmpty(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.catalog.Refresh(context.Background()))
	return f
}

func (f *fixture) productByName(t *testing.T, name string) models.Product {
	t.Helper()
	for _, p := range f.catalog.Products() {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("product %q not in catalog", name)
	return models.Product{}
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func newDraft(name string, price float64, stock int) *models.ProductDraft {
	return &models.ProductDraft{
		Name:        strPtr(name),
		Price:       floatPtr(price),
		Description: strPtr(name + " description"),
		Category:    strPtr("Test"),
		Stock:       intPtr(stock),
	}
}
