// internal/services/product_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// Seed actions reported by SeedIfEmpty.
const (
	SeedActionSkipped     = "skipped"
	SeedActionInitialized = "initialized"
)

// ProductService translates catalog intents into store calls. Every method
// fails with models.ErrStoreUnavailable before any I/O when the store is
// not configured.
type ProductService struct {
	gateway  store.Gateway
	products store.ProductStore
	clock    utils.Clock
}

type SeedResult struct {
	InsertedCount int      `json:"insertedCount"`
	ProductsCount int64    `json:"productsCount"`
	Action        string   `json:"action"`
	InsertedIDs   []string `json:"insertedIds,omitempty"`
}

func NewProductService(gateway store.Gateway, products store.ProductStore, clock utils.Clock) *ProductService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &ProductService{
		gateway:  gateway,
		products: products,
		clock:    clock,
	}
}

func (s *ProductService) ensureConfigured() error {
	if !s.gateway.Configured() {
		return models.ErrStoreNotConfigured
	}
	return nil
}

// ListProducts returns every product, newest first.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	products, err := s.products.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products from database: %w", err)
	}
	return products, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	product, err := draft.ToProduct(s.clock.Now())
	if err != nil {
		return nil, err
	}

	id, err := s.products.InsertOne(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = id

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"name":       product.Name,
	}).Info("Product created")
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, id)
}

// UpdateProduct merges patch into the stored product and returns the full
// document as stored.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	matched, err := s.products.UpdateOne(ctx, id, *patch, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, models.ErrNotFound
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logrus.WithField("product_id", id).Info("Product updated")
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	if err := s.ensureConfigured(); err != nil {
		return false, err
	}

	deleted, err := s.products.DeleteOne(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted == 0 {
		return false, models.ErrNotFound
	}

	logrus.WithField("product_id", id).Info("Product deleted")
	return true, nil
}

// SeedIfEmpty inserts the sample catalog when no products exist. A non-empty
// collection is left untouched.
func (s *ProductService) SeedIfEmpty(ctx context.Context) (*SeedResult, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	count, err := s.products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if count > 0 {
		logrus.WithField("count", count).Info("Database already has products, skipping seed")
		return &SeedResult{
			ProductsCount: count,
			Action:        SeedActionSkipped,
		}, nil
	}

	ids, err := s.products.InsertMany(ctx, SampleProducts(s.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize products database: %w", err)
	}

	logrus.WithField("inserted", len(ids)).Info("Sample products inserted")
	return &SeedResult{
		InsertedCount: len(ids),
		ProductsCount: int64(len(ids)),
		Action:        SeedActionInitialized,
		InsertedIDs:   ids,
	}, nil
}
