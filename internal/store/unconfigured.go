// internal/store/unconfigured.go
package store

import (
	"context"
	"time"

	"github.com/javajoker/storefront-backend/internal/models"
)

const notConfiguredMessage = "store not configured"

// Unconfigured returns a backend whose every operation fails with
// models.ErrStoreNotConfigured without attempting I/O.
func Unconfigured() *Backend {
	u := unconfigured{}
	return &Backend{
		Driver:   "none",
		Gateway:  u,
		Products: u,
		Sessions: u,
		Uploads:  u,
		Migrator: u,
	}
}

type unconfigured struct{}

func (unconfigured) Ping(context.Context) models.DBStatus {
	return models.DisconnectedStatus(notConfiguredMessage)
}

func (unconfigured) Configured() bool { return false }

func (unconfigured) Close(context.Context) error { return nil }

func (unconfigured) Find(context.Context) ([]models.Product, error) {
	return nil, models.ErrStoreNotConfigured
}

func (unconfigured) FindByID(context.Context, string) (*models.Product, error) {
	return nil, models.ErrStoreNotConfigured
}

func (unconfigured) InsertOne(context.Context, *models.Product) (string, error) {
	return "", models.ErrStoreNotConfigured
}

func (unconfigured) InsertMany(context.Context, []models.Product) ([]string, error) {
	return nil, models.ErrStoreNotConfigured
}

func (unconfigured) UpdateOne(context.Context, string, models.ProductPatch, time.Time) (int64, error) {
	return 0, models.ErrStoreNotConfigured
}

func (unconfigured) DeleteOne(context.Context, string) (int64, error) {
	return 0, models.ErrStoreNotConfigured
}

func (unconfigured) Count(context.Context) (int64, error) {
	return 0, models.ErrStoreNotConfigured
}

func (unconfigured) Create(context.Context, *models.Session) error {
	return models.ErrStoreNotConfigured
}

func (unconfigured) FindActive(context.Context, string, time.Time) (*models.Session, error) {
	return nil, models.ErrStoreNotConfigured
}

func (unconfigured) Delete(context.Context, string) error {
	return models.ErrStoreNotConfigured
}

func (unconfigured) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, models.ErrStoreNotConfigured
}

func (unconfigured) Record(context.Context, *models.Upload) error {
	return models.ErrStoreNotConfigured
}

func (unconfigured) Setup(context.Context) (*SetupReport, error) {
	return nil, models.ErrStoreNotConfigured
}
