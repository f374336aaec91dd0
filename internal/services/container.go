// internal/services/container.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/utils"
)

const (
	cartSweepInterval    = 5 * time.Minute
	sessionPurgeInterval = time.Hour
)

// Container holds the process-wide services built once at startup.
type Container struct {
	Backend  *store.Backend
	Products *ProductService
	Catalog  *CatalogService
	Carts    *CartService
	Auth     *AuthService
	Storage  *StorageService
}

func NewContainer(cfg *config.Config, backend *store.Backend, clock utils.Clock) (*Container, error) {
	if clock == nil {
		clock = utils.SystemClock{}
	}

	products := NewProductService(backend.Gateway, backend.Products, clock)
	catalog := NewCatalogService(products, backend.Gateway, clock, cfg.Catalog.LowStockThreshold)

	auth, err := NewAuthService(backend.Sessions, cfg.Store.HasPersistentStore, cfg.Auth, clock)
	if err != nil {
		return nil, err
	}

	storage, err := NewStorageService(cfg, backend.Uploads, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &Container{
		Backend:  backend,
		Products: products,
		Catalog:  catalog,
		Carts:    NewCartService(catalog, clock, cfg.Cart.IdleTTL),
		Auth:     auth,
		Storage:  storage,
	}, nil
}

// Start loads the catalog and launches the background loops. The loops stop
// when ctx is done.
func (c *Container) Start(ctx context.Context, cfg *config.Config) {
	c.Catalog.Start(ctx)

	go c.Catalog.Watch(ctx, cfg.Catalog.RecheckInterval)
	go c.Carts.Run(ctx, cartSweepInterval)
	go c.Auth.RunJanitor(ctx, sessionPurgeInterval)
}
