// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDriver(t *testing.T) {
	tests := []struct {
		name        string
		explicit    string
		mongoURI    string
		postgresDSN string
		want        string
	}{
		{"nothing configured", "", "", "", DriverNone},
		{"mongo uri detected", "", "mongodb://localhost", "", DriverMongo},
		{"postgres url detected", "", "", "postgres://localhost/db", DriverPostgres},
		{"mongo preferred when both set", "", "mongodb://localhost", "postgres://localhost/db", DriverMongo},
		{"explicit postgres", "postgres", "mongodb://localhost", "postgres://localhost/db", DriverPostgres},
		{"explicit mongo without uri", "mongo", "", "postgres://localhost/db", DriverNone},
		{"explicit memory", "memory", "mongodb://localhost", "", DriverMemory},
		{"explicit none", "none", "mongodb://localhost", "", DriverNone},
		{"case insensitive", "MongoDB", "mongodb://localhost", "", DriverMongo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDriver(tt.explicit, tt.mongoURI, tt.postgresDSN))
		})
	}
}

func TestLoadResolvesStoreOnce(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("SESSION_TTL", "48h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.True(t, cfg.Store.HasPersistentStore)
	assert.Equal(t, 48*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10, cfg.Catalog.LowStockThreshold)
}

func TestLoadMemoryIsNotPersistent(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.False(t, cfg.Store.HasPersistentStore)
}

func TestValidateRejectsDefaultsInProduction(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		Auth: AuthConfig{
			AdminPassword: "s3cret",
			JWTSecret:     defaultJWTSecret,
			SessionTTL:    time.Hour,
		},
	}
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "rotated"
	assert.NoError(t, cfg.Validate())

	cfg.Auth.AdminPassword = defaultAdminPassword
	assert.Error(t, cfg.Validate())
}
