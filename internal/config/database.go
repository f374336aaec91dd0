// internal/config/database.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverNone     = "none"
)

type StoreConfig struct {
	Driver         string
	MongoURI       string
	MongoDatabase  string
	ConnectTimeout time.Duration
	Postgres       PostgresConfig

	// HasPersistentStore is resolved once in Load and consulted everywhere
	// the persistent and fallback code paths differ.
	HasPersistentStore bool
}

type PostgresConfig struct {
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

// DSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (d *PostgresConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

func loadStoreConfig() StoreConfig {
	cfg := StoreConfig{
		MongoURI:       getEnv("MONGODB_URI", ""),
		MongoDatabase:  getEnv("MONGODB_DATABASE", "ecommerce"),
		ConnectTimeout: getEnvAsDuration("STORE_CONNECT_TIMEOUT", 10*time.Second),
		Postgres: PostgresConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", ""),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "storefront"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
	}
	cfg.Driver = ResolveDriver(getEnv("STORE_DRIVER", ""), cfg.MongoURI, cfg.Postgres.DSN())
	cfg.HasPersistentStore = cfg.Driver == DriverMongo || cfg.Driver == DriverPostgres
	return cfg
}

// ResolveDriver picks the store backend. An explicit driver wins, but a
// persistent driver without a connection string is downgraded to none.
// Without an explicit driver the first configured connection string decides.
func ResolveDriver(explicit, mongoURI, postgresDSN string) string {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case DriverMongo, "mongodb":
		if mongoURI == "" {
			return DriverNone
		}
		return DriverMongo
	case DriverPostgres, "postgresql", "pg":
		if postgresDSN == "" {
			return DriverNone
		}
		return DriverPostgres
	case DriverMemory:
		return DriverMemory
	case DriverNone:
		return DriverNone
	}

	switch {
	case mongoURI != "":
		return DriverMongo
	case postgresDSN != "":
		return DriverPostgres
	default:
		return DriverNone
	}
}
