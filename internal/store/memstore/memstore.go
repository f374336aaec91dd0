// internal/store/memstore/memstore.go
package memstore

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

// Store keeps products, sessions and uploads in process memory. It is
// selected with STORE_DRIVER=memory and backs the test suites.
type Store struct {
	mu       sync.RWMutex
	products map[string]*entry
	seq      int64
	sessions map[string]models.Session
	uploads  []models.Upload
	created  map[string]bool

	available atomic.Bool
	calls     atomic.Int64
}

type entry struct {
	product models.Product
	seq     int64
}

func New() *Store {
	s := &Store{
		products: make(map[string]*entry),
		sessions: make(map[string]models.Session),
		created:  make(map[string]bool),
	}
	s.available.Store(true)
	return s
}

// Backend wraps the store as a store.Backend.
func (s *Store) Backend() *store.Backend {
	return &store.Backend{
		Driver:   "memory",
		Gateway:  s,
		Products: s,
		Sessions: s,
		Uploads:  s,
		Migrator: s,
	}
}

// SetAvailable simulates losing or regaining the connection.
func (s *Store) SetAvailable(ok bool) {
	s.available.Store(ok)
}

// Calls returns how many data operations reached the store.
func (s *Store) Calls() int64 {
	return s.calls.Load()
}

func (s *Store) begin() error {
	s.calls.Add(1)
	if !s.available.Load() {
		return models.ErrStoreUnavailable
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) models.DBStatus {
	if err := ctx.Err(); err != nil {
		return models.DisconnectedStatus(err.Error())
	}
	if !s.available.Load() {
		return models.DisconnectedStatus(models.ErrStoreUnavailable.Error())
	}
	return models.ConnectedStatus()
}

func (s *Store) Configured() bool { return true }

func (s *Store) Close(context.Context) error { return nil }

func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", models.ErrInvalidID
	}
	return parsed.String(), nil
}

func (s *Store) Find(ctx context.Context) ([]models.Product, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries := make([]*entry, 0, len(s.products))
	for _, e := range s.products {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		ci, cj := entries[i].product.CreatedAt, entries[j].product.CreatedAt
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return entries[i].seq < entries[j].seq
	})

	out := make([]models.Product, len(entries))
	for i, e := range entries {
		out[i] = e.product.Clone()
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.products[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	p := e.product.Clone()
	return &p, nil
}

func (s *Store) InsertOne(ctx context.Context, product *models.Product) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(*product), nil
}

func (s *Store) InsertMany(ctx context.Context, products []models.Product) ([]string, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, s.insertLocked(p))
	}
	return ids, nil
}

func (s *Store) insertLocked(p models.Product) string {
	id := uuid.NewString()
	p = p.Clone()
	p.ID = id
	s.seq++
	s.products[id] = &entry{product: p, seq: s.seq}
	s.created[store.ProductsCollection] = true

	logrus.WithFields(logrus.Fields{
		"collection": store.ProductsCollection,
		"id":         id,
	}).Debug("memstore insert")
	return id
}

func (s *Store) UpdateOne(ctx context.Context, id string, patch models.ProductPatch, updatedAt time.Time) (int64, error) {
	if err := s.begin(); err != nil {
		return 0, err
	}
	key, err := parseID(id)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.products[key]
	if !ok {
		return 0, nil
	}
	patch.Apply(&e.product, updatedAt)
	return 1, nil
}

func (s *Store) DeleteOne(ctx context.Context, id string) (int64, error) {
	if err := s.begin(); err != nil {
		return 0, err
	}
	key, err := parseID(id)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[key]; !ok {
		return 0, nil
	}
	delete(s.products, key)
	return 1, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := s.begin(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func (s *Store) Create(ctx context.Context, session *models.Session) error {
	if err := s.begin(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = *session
	return nil
}

func (s *Store) FindActive(ctx context.Context, sessionID string, now time.Time) (*models.Session, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.Expired(now) {
		return nil, models.ErrSessionNotFound
	}
	return &session, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.begin(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := s.begin(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged, nil
}

func (s *Store) Record(ctx context.Context, upload *models.Upload) error {
	if err := s.begin(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	s.uploads = append(s.uploads, *upload)
	return nil
}

// RecordedUploads returns the recorded upload metadata.
func (s *Store) RecordedUploads() []models.Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Upload(nil), s.uploads...)
}

func (s *Store) Setup(ctx context.Context) (*store.SetupReport, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report := &store.SetupReport{Collections: make(map[string]string)}
	for _, name := range []string{store.ProductsCollection, store.SessionsCollection, store.UploadsCollection} {
		if s.created[name] {
			report.Collections[name] = store.CollectionExisting
			continue
		}
		s.created[name] = true
		report.Collections[name] = store.CollectionCreated
	}
	return report, nil
}
