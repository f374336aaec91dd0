// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type Connectivity string

const (
	ConnectivityUninitialized Connectivity = "uninitialized"
	ConnectivityChecking      Connectivity = "checking"
	ConnectivityConnected     Connectivity = "connected"
	ConnectivityDisconnected  Connectivity = "disconnected"
)

type LoadStatus string

const (
	LoadIdle    LoadStatus = "idle"
	LoadLoading LoadStatus = "loading"
	LoadReady   LoadStatus = "ready"
	LoadError   LoadStatus = "error"
)

// RelatedLimit caps the related products shown beside a product.
const RelatedLimit = 4

// refreshTimeout bounds one shared check+fetch.
const refreshTimeout = 15 * time.Second

type CatalogState struct {
	Connectivity  Connectivity    `json:"connectivity"`
	Load          LoadStatus      `json:"load"`
	DBStatus      models.DBStatus `json:"dbStatus"`
	Error         string          `json:"error,omitempty"`
	ProductCount  int             `json:"productCount"`
	LastRefreshed *time.Time      `json:"lastRefreshed,omitempty"`
}

type CatalogStats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Hidden   int `json:"hidden"`
	LowStock int `json:"lowStock"`
}

// CatalogService owns the process-wide in-memory product collection and the
// cached connectivity state. Mutations are confirmed by the store before the
// cache changes, and fail fast with models.ErrDisconnected while the cached
// state is not connected.
type CatalogService struct {
	products          *ProductService
	gateway           store.Gateway
	clock             utils.Clock
	lowStockThreshold int

	refreshGroup singleflight.Group

	mu    sync.RWMutex
	items []models.Product
	state CatalogState
}

func NewCatalogService(products *ProductService, gateway store.Gateway, clock utils.Clock, lowStockThreshold int) *CatalogService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &CatalogService{
		products:          products,
		gateway:           gateway,
		clock:             clock,
		lowStockThreshold: lowStockThreshold,
		state: CatalogState{
			Connectivity: ConnectivityUninitialized,
			Load:         LoadIdle,
		},
	}
}

// Start performs the initial connectivity check and fetch. Failures are
// recorded in State and do not stop the service.
func (s *CatalogService) Start(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		logrus.WithError(err).Warn("Initial catalog load failed")
		return
	}
	logrus.WithField("products", len(s.Products())).Info("Catalog loaded")
}

// Watch refreshes every interval while the catalog is not connected, so a
// store that comes up after startup is picked up without a manual refresh.
func (s *CatalogService) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.State().Connectivity == ConnectivityConnected {
				continue
			}
			if err := s.Refresh(ctx); err == nil {
				logrus.Info("Catalog reconnected to database")
			}
		}
	}
}

// Refresh re-checks connectivity and reloads the collection. Overlapping
// calls share one in-flight refresh. The flight runs detached from the
// caller's cancellation, so connectivity reflects the store and never the
// lifetime of the request that triggered it.
func (s *CatalogService) Refresh(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("refresh", func() (interface{}, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return nil, s.refresh(flightCtx)
	})
	return err
}

func (s *CatalogService) refresh(ctx context.Context) error {
	s.mu.Lock()
	s.state.Connectivity = ConnectivityChecking
	s.mu.Unlock()

	status := s.gateway.Ping(ctx)
	if !status.Connected {
		err := models.ErrDisconnected
		s.mu.Lock()
		s.items = nil
		s.state.Connectivity = ConnectivityDisconnected
		s.state.DBStatus = status
		s.state.Load = LoadError
		s.state.Error = disconnectedMessage(status)
		s.state.ProductCount = 0
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.state.Connectivity = ConnectivityConnected
	s.state.DBStatus = status
	s.state.Load = LoadLoading
	s.mu.Unlock()

	products, err := s.products.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.items = nil
		s.state.Load = LoadError
		s.state.Error = err.Error()
		s.state.ProductCount = 0
		s.markUnavailableLocked(err)
		return err
	}

	now := s.clock.Now()
	s.items = products
	s.state.Load = LoadReady
	s.state.Error = ""
	s.state.ProductCount = len(products)
	s.state.LastRefreshed = &now
	return nil
}

func disconnectedMessage(status models.DBStatus) string {
	if msg := status.ErrorMessage(); msg != "" {
		return models.ErrDisconnected.Error() + ": " + msg
	}
	return models.ErrDisconnected.Error()
}

// markUnavailableLocked downgrades connectivity when the store failed at the
// transport level.
func (s *CatalogService) markUnavailableLocked(err error) {
	if errors.Is(err, models.ErrStoreUnavailable) {
		s.state.Connectivity = ConnectivityDisconnected
		s.state.DBStatus = models.DisconnectedStatus(err.Error())
	}
}

func (s *CatalogService) State() CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Products returns a copy of the cached collection in source order.
func (s *CatalogService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.items))
	for i, p := range s.items {
		out[i] = p.Clone()
	}
	return out
}

func (s *CatalogService) ApprovedOnly() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ApprovedOnly(s.items)
}

func (s *CatalogService) FilterAndSort(q CatalogQuery) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterAndSort(s.items, q)
}

// Get looks a product up in the cache only.
func (s *CatalogService) Get(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	return models.Product{}, false
}

func (s *CatalogService) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *CatalogService) Stats() CatalogStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := CatalogStats{Total: len(s.items)}
	for _, p := range s.items {
		if p.Approved {
			stats.Approved++
		} else {
			stats.Hidden++
		}
		if p.IsLowStock(s.lowStockThreshold) {
			stats.LowStock++
		}
	}
	return stats
}

func (s *CatalogService) AdminSorted(key string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AdminSort(s.items, key)
}

// Categories lists the categories of approved products.
func (s *CatalogService) Categories() []string {
	return Categories(s.ApprovedOnly())
}

// Related lists approved products sharing the category of id.
func (s *CatalogService) Related(id string) []models.Product {
	product, ok := s.Get(id)
	if !ok {
		return []models.Product{}
	}
	return Related(s.ApprovedOnly(), product, RelatedLimit)
}

func (s *CatalogService) requireConnected() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Connectivity != ConnectivityConnected {
		s.state.Error = models.ErrDisconnected.Error()
		return models.ErrDisconnected
	}
	return nil
}

// recordFailure publishes store failures in the shared state. Validation and
// not-found errors only go back to the caller.
func (s *CatalogService) recordFailure(op string, err error) error {
	if errors.Is(err, models.ErrStoreUnavailable) {
		s.mu.Lock()
		s.state.Error = err.Error()
		s.markUnavailableLocked(err)
		s.mu.Unlock()
	}

	logrus.WithError(err).WithField("operation", op).Warn("Catalog mutation failed")
	return err
}

func (s *CatalogService) clearErrorLocked() {
	s.state.Error = ""
	s.state.ProductCount = len(s.items)
}

// AddProduct creates a product and appends it to the cache. Cache order is
// not re-sorted until the next refresh.
func (s *CatalogService) AddProduct(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {
	if err := s.requireConnected(); err != nil {
		return nil, err
	}

	product, err := s.products.CreateProduct(ctx, draft)
	if err != nil {
		return nil, s.recordFailure("add", err)
	}

	s.mu.Lock()
	s.items = append(s.items, product.Clone())
	s.clearErrorLocked()
	s.mu.Unlock()

	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error) {
	if err := s.requireConnected(); err != nil {
		return nil, err
	}

	product, err := s.products.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, s.recordFailure("update", err)
	}

	s.mu.Lock()
	if i := s.indexLocked(id); i >= 0 {
		s.items[i] = product.Clone()
	} else {
		s.items = append(s.items, product.Clone())
	}
	s.clearErrorLocked()
	s.mu.Unlock()

	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.requireConnected(); err != nil {
		return err
	}

	if _, err := s.products.DeleteProduct(ctx, id); err != nil {
		return s.recordFailure("delete", err)
	}

	s.mu.Lock()
	if i := s.indexLocked(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	s.clearErrorLocked()
	s.mu.Unlock()

	return nil
}

// ToggleApproval flips the approved flag of a cached product. A product
// missing from the cache is not found, whatever the store holds.
func (s *CatalogService) ToggleApproval(ctx context.Context, id string) (*models.Product, error) {
	if err := s.requireConnected(); err != nil {
		return nil, err
	}

	current, ok := s.Get(id)
	if !ok {
		return nil, s.recordFailure("toggle", models.ErrNotFound)
	}

	approved := !current.Approved
	return s.UpdateProduct(ctx, id, &models.ProductPatch{Approved: &approved})
}

// Initialize seeds the store when empty and reloads the cache after a seed.
func (s *CatalogService) Initialize(ctx context.Context) (*SeedResult, error) {
	if err := s.requireConnected(); err != nil {
		return nil, err
	}

	result, err := s.products.SeedIfEmpty(ctx)
	if err != nil {
		return nil, s.recordFailure("initialize", err)
	}

	if result.Action == SeedActionInitialized {
		if err := s.Refresh(ctx); err != nil {
			logrus.WithError(err).Warn("Catalog reload after seeding failed")
		}
	}
	return result, nil
}
