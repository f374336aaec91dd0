// internal/store/store.go
package store

import (
	"context"
	"time"

	"github.com/javajoker/storefront-backend/internal/models"
)

// Collection names shared by every backend.
const (
	ProductsCollection = "products"
	SessionsCollection = "sessions"
	UploadsCollection  = "uploads"
)

// Gateway is the connectivity surface of a backend.
type Gateway interface {
	Ping(ctx context.Context) models.DBStatus
	Configured() bool
	Close(ctx context.Context) error
}

// ProductStore is a key-by-id product collection. Find returns products
// newest first by creation time.
type ProductStore interface {
	Find(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	InsertOne(ctx context.Context, product *models.Product) (string, error)
	InsertMany(ctx context.Context, products []models.Product) ([]string, error)
	UpdateOne(ctx context.Context, id string, patch models.ProductPatch, updatedAt time.Time) (int64, error)
	DeleteOne(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// SessionStore persists admin sessions. FindActive only returns sessions
// whose expiry is after now.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindActive(ctx context.Context, sessionID string, now time.Time) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// UploadStore records metadata of uploaded files.
type UploadStore interface {
	Record(ctx context.Context, upload *models.Upload) error
}

// Migrator prepares collections, tables and indexes.
type Migrator interface {
	Setup(ctx context.Context) (*SetupReport, error)
}

// Collection states reported by Setup.
const (
	CollectionExisting = "existing"
	CollectionCreated  = "created"
)

type SetupReport struct {
	Collections map[string]string `json:"collections"`
}

// ProductsCreated reports whether Setup had to create the products collection.
func (r *SetupReport) ProductsCreated() bool {
	return r != nil && r.Collections[ProductsCollection] == CollectionCreated
}

// Backend bundles the pieces of one configured store.
type Backend struct {
	Driver   string
	Gateway  Gateway
	Products ProductStore
	Sessions SessionStore
	Uploads  UploadStore
	Migrator Migrator
}

// Persistent reports whether the backend survives a restart.
func (b *Backend) Persistent() bool {
	return b.Gateway.Configured() && b.Driver != "memory"
}
