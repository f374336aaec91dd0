// internal/store/pgstore/pgstore.go
package pgstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

// Open configures a pooled gorm connection. The first round trip happens on
// Ping so an unreachable server does not prevent startup.
func Open(cfg config.PostgresConfig, timeout time.Duration) (*Store, error) {
	gormConfig := &gorm.Config{
		Logger:               logger.Default.LogMode(logLevel(cfg.LogLevel)),
		DisableAutomaticPing: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	return &Store{db: db, timeout: timeout}, nil
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

func (s *Store) Backend() *store.Backend {
	return &store.Backend{
		Driver:   "postgres",
		Gateway:  s,
		Products: s,
		Sessions: s,
		Uploads:  s,
		Migrator: s,
	}
}

// DB exposes the gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if s.timeout <= 0 {
		ctx, cancel := context.WithCancel(ctx)
		return s.db.WithContext(ctx), cancel
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

func (s *Store) Ping(ctx context.Context) models.DBStatus {
	sqlDB, err := s.db.DB()
	if err != nil {
		return models.DisconnectedStatus(err.Error())
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		logrus.WithError(err).Warn("PostgreSQL ping failed")
		return models.DisconnectedStatus(err.Error())
	}
	return models.ConnectedStatus()
}

func (s *Store) Configured() bool { return true }

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// wrap turns connectivity failures into models.ErrStoreUnavailable.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", models.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) Find(ctx context.Context) ([]models.Product, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var rows []productRow
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, wrap("find products", err)
	}

	products := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.toModel())
	}
	return products, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Product, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	db, cancel := s.conn(ctx)
	defer cancel()

	var row productRow
	err = db.Where("id = ?", pid).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, wrap("find product", err)
	}

	p := row.toModel()
	return &p, nil
}

func (s *Store) InsertOne(ctx context.Context, product *models.Product) (string, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	row := newProductRow(product)
	if err := db.Create(&row).Error; err != nil {
		return "", wrap("insert product", err)
	}

	logrus.WithFields(logrus.Fields{
		"table": "products",
		"id":    row.ID,
	}).Debug("Inserted product")
	return row.ID.String(), nil
}

func (s *Store) InsertMany(ctx context.Context, products []models.Product) ([]string, error) {
	if len(products) == 0 {
		return []string{}, nil
	}

	db, cancel := s.conn(ctx)
	defer cancel()

	rows := make([]productRow, 0, len(products))
	for i := range products {
		rows = append(rows, newProductRow(&products[i]))
	}

	if err := db.Create(&rows).Error; err != nil {
		return nil, wrap("insert products", err)
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID.String())
	}
	return ids, nil
}

func (s *Store) UpdateOne(ctx context.Context, id string, patch models.ProductPatch, updatedAt time.Time) (int64, error) {
	pid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	db, cancel := s.conn(ctx)
	defer cancel()

	res := db.Model(&productRow{}).Where("id = ?", pid).Updates(patchColumns(patch, updatedAt))
	if res.Error != nil {
		return 0, wrap("update product", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) DeleteOne(ctx context.Context, id string) (int64, error) {
	pid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	db, cancel := s.conn(ctx)
	defer cancel()

	res := db.Where("id = ?", pid).Delete(&productRow{})
	if res.Error != nil {
		return 0, wrap("delete product", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&productRow{}).Count(&count).Error; err != nil {
		return 0, wrap("count products", err)
	}
	return count, nil
}

func (s *Store) Create(ctx context.Context, session *models.Session) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	row := sessionRow{
		SessionID: session.SessionID,
		Username:  session.Username,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	return wrap("insert session", db.Create(&row).Error)
}

func (s *Store) FindActive(ctx context.Context, sessionID string, now time.Time) (*models.Session, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var row sessionRow
	err := db.Where("session_id = ? AND expires_at > ?", sessionID, now).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, wrap("find session", err)
	}

	session := row.toModel()
	return &session, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	return wrap("delete session", db.Where("session_id = ?", sessionID).Delete(&sessionRow{}).Error)
}

func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	res := db.Where("expires_at <= ?", now).Delete(&sessionRow{})
	if res.Error != nil {
		return 0, wrap("purge sessions", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) Record(ctx context.Context, upload *models.Upload) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	row := uploadRow{
		ID:        uuid.New(),
		Key:       upload.Key,
		URL:       upload.URL,
		FileName:  upload.FileName,
		Size:      upload.Size,
		MimeType:  upload.MimeType,
		CreatedAt: upload.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return wrap("insert upload", err)
	}
	upload.ID = row.ID.String()
	return nil
}

// Setup creates missing tables and their indexes.
func (s *Store) Setup(ctx context.Context) (*store.SetupReport, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	tables := []struct {
		name  string
		model interface{}
	}{
		{store.ProductsCollection, &productRow{}},
		{store.SessionsCollection, &sessionRow{}},
		{store.UploadsCollection, &uploadRow{}},
	}

	report := &store.SetupReport{Collections: make(map[string]string)}
	migrator := db.Migrator()
	for _, t := range tables {
		state := store.CollectionExisting
		if !migrator.HasTable(t.model) {
			state = store.CollectionCreated
		}
		if err := db.AutoMigrate(t.model); err != nil {
			return nil, wrap("migrate "+t.name, err)
		}
		report.Collections[t.name] = state
	}

	logrus.WithField("tables", report.Collections).Info("PostgreSQL setup completed")
	return report, nil
}
