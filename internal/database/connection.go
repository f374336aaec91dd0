// internal/database/connection.go
package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/store/memstore"
	"github.com/javajoker/storefront-backend/internal/store/mongostore"
	"github.com/javajoker/storefront-backend/internal/store/pgstore"
)

// Initialize opens the backend selected by cfg.Driver. Without a configured
// driver it returns the unconfigured backend, whose operations fail with
// models.ErrStoreNotConfigured.
func Initialize(ctx context.Context, cfg config.StoreConfig) (*store.Backend, error) {
	log := logrus.WithField("driver", cfg.Driver)

	switch cfg.Driver {
	case config.DriverMongo:
		s, err := mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		log.WithField("database", cfg.MongoDatabase).Info("MongoDB client created")
		return s.Backend(), nil

	case config.DriverPostgres:
		s, err := pgstore.Open(cfg.Postgres, cfg.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		log.Info("PostgreSQL pool created")
		return s.Backend(), nil

	case config.DriverMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		return memstore.New().Backend(), nil

	case config.DriverNone, "":
		log.Warn("No database configured, catalog operations will report the store as unavailable")
		return store.Unconfigured(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// RunMigrations prepares collections and indexes when the backend is
// reachable. Failures are logged; the catalog reports them through its
// connectivity state.
func RunMigrations(ctx context.Context, backend *store.Backend) {
	if !backend.Gateway.Configured() {
		return
	}
	if status := backend.Gateway.Ping(ctx); !status.Connected {
		logrus.WithField("error", status.ErrorMessage()).Warn("Skipping migrations, database unreachable")
		return
	}
	if _, err := backend.Migrator.Setup(ctx); err != nil {
		logrus.WithError(err).Error("Failed to run migrations")
	}
}

func Close(ctx context.Context, backend *store.Backend) {
	if err := backend.Gateway.Close(ctx); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
		return
	}
	logrus.Info("Database connection closed successfully")
}
