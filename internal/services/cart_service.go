// internal/services/cart_service.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// CartService keeps one cart per browser session, keyed by the cartId
// cookie. Carts never touch the store.
type CartService struct {
	catalog *CatalogService
	clock   utils.Clock
	idleTTL time.Duration

	mu    sync.Mutex
	carts map[string]*Cart
}

func NewCartService(catalog *CatalogService, clock utils.Clock, idleTTL time.Duration) *CartService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &CartService{
		catalog: catalog,
		clock:   clock,
		idleTTL: idleTTL,
		carts:   make(map[string]*Cart),
	}
}

// Cart returns the cart for id, creating one when id is unknown. A malformed
// id is replaced by a fresh one; the returned id is the one to persist.
func (s *CartService) Cart(id string) (string, *Cart) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[id]
	if !ok {
		cart = NewCart()
		s.carts[id] = cart
	}
	cart.touch(s.clock.Now())
	return id, cart
}

// AddProduct snapshots a storefront product into the cart. Hidden or
// unknown products are not found; products without stock cannot be added.
func (s *CartService) AddProduct(cartID, productID string) (CartView, error) {
	id, cart := s.Cart(cartID)

	product, ok := s.catalog.Get(productID)
	if !ok || !product.Approved {
		return cart.View(id), models.ErrNotFound
	}
	if !product.InStock() {
		return cart.View(id), models.ErrOutOfStock
	}

	cart.AddItem(product.Snapshot())
	return cart.View(id), nil
}

// UpdateQuantity sets a line's quantity; zero or less removes it.
func (s *CartService) UpdateQuantity(cartID, productID string, quantity int) (CartView, error) {
	id, cart := s.Cart(cartID)
	if quantity > 0 && !cart.Contains(productID) {
		return cart.View(id), models.ErrNotFound
	}
	cart.UpdateQuantity(productID, quantity)
	return cart.View(id), nil
}

func (s *CartService) RemoveItem(cartID, productID string) CartView {
	id, cart := s.Cart(cartID)
	cart.RemoveItem(productID)
	return cart.View(id)
}

func (s *CartService) Clear(cartID string) CartView {
	id, cart := s.Cart(cartID)
	cart.Clear()
	return cart.View(id)
}

func (s *CartService) Toggle(cartID string) CartView {
	id, cart := s.Cart(cartID)
	cart.ToggleOpen()
	return cart.View(id)
}

func (s *CartService) View(cartID string) CartView {
	id, cart := s.Cart(cartID)
	return cart.View(id)
}

// Len returns the number of live carts.
func (s *CartService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// EvictIdle drops carts not used within the idle TTL.
func (s *CartService) EvictIdle() int {
	cutoff := s.clock.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, cart := range s.carts {
		if cart.idleSince().Before(cutoff) {
			delete(s.carts, id)
			evicted++
		}
	}
	return evicted
}

// Run evicts idle carts every interval until ctx is done.
func (s *CartService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(); n > 0 {
				logrus.WithField("evicted", n).Debug("Evicted idle carts")
			}
		}
	}
}
