// internal/store/mongostore/mongostore.go
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Open creates a client for uri using the stable server API. The client
// connects lazily; an unreachable server surfaces through Ping and through
// models.ErrStoreUnavailable on every operation.
func Open(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &Store{
		client:  client,
		db:      client.Database(database),
		timeout: timeout,
	}, nil
}

func (s *Store) Backend() *store.Backend {
	return &store.Backend{
		Driver:   "mongo",
		Gateway:  s,
		Products: s,
		Sessions: s,
		Uploads:  s,
		Migrator: s,
	}
}

// Database exposes the underlying database handle.
func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) products() *mongo.Collection {
	return s.db.Collection(store.ProductsCollection)
}

func (s *Store) sessions() *mongo.Collection {
	return s.db.Collection(store.SessionsCollection)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) Ping(ctx context.Context) models.DBStatus {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	if err != nil {
		logrus.WithError(err).Warn("MongoDB ping failed")
		return models.DisconnectedStatus(err.Error())
	}
	return models.ConnectedStatus()
}

func (s *Store) Configured() bool { return true }

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// wrap classifies driver errors. Connectivity failures become
// models.ErrStoreUnavailable so callers can tell them apart.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", models.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) Find(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.products().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, wrap("find products", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrap("decode products", err)
	}

	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toModel())
	}

	logrus.WithFields(logrus.Fields{
		"collection": store.ProductsCollection,
		"count":      len(products),
	}).Debug("Fetched products")
	return products, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var doc productDocument
	err = s.products().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, wrap("find product", err)
	}

	p := doc.toModel()
	return &p, nil
}

func (s *Store) InsertOne(ctx context.Context, product *models.Product) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.products().InsertOne(ctx, newProductDocument(product))
	if err != nil {
		return "", wrap("insert product", err)
	}

	id := objectIDString(res.InsertedID)
	logrus.WithFields(logrus.Fields{
		"collection": store.ProductsCollection,
		"id":         id,
	}).Debug("Inserted product")
	return id, nil
}

func (s *Store) InsertMany(ctx context.Context, products []models.Product) ([]string, error) {
	if len(products) == 0 {
		return []string{}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	docs := make([]interface{}, 0, len(products))
	for i := range products {
		docs = append(docs, newProductDocument(&products[i]))
	}

	res, err := s.products().InsertMany(ctx, docs)
	if err != nil {
		return nil, wrap("insert products", err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, objectIDString(id))
	}
	return ids, nil
}

func (s *Store) UpdateOne(ctx context.Context, id string, patch models.ProductPatch, updatedAt time.Time) (int64, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}

	set := bson.M{}
	for field, value := range patch.Fields() {
		set[field] = value
	}
	set["updatedAt"] = updatedAt

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.products().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, wrap("update product", err)
	}

	logrus.WithFields(logrus.Fields{
		"collection": store.ProductsCollection,
		"id":         id,
		"matched":    res.MatchedCount,
	}).Debug("Updated product")
	return res.MatchedCount, nil
}

func (s *Store) DeleteOne(ctx context.Context, id string) (int64, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.products().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, wrap("delete product", err)
	}
	return res.DeletedCount, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	count, err := s.products().CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, wrap("count products", err)
	}
	return count, nil
}

func (s *Store) Create(ctx context.Context, session *models.Session) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.sessions().InsertOne(ctx, sessionDocument{
		SessionID: session.SessionID,
		Username:  session.Username,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	return wrap("insert session", err)
}

func (s *Store) FindActive(ctx context.Context, sessionID string, now time.Time) (*models.Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"sessionId": sessionID,
		"expiresAt": bson.M{"$gt": now},
	}

	var doc sessionDocument
	err := s.sessions().FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, wrap("find session", err)
	}

	session := doc.toModel()
	return &session, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.sessions().DeleteOne(ctx, bson.M{"sessionId": sessionID})
	return wrap("delete session", err)
}

// PurgeExpired removes sessions the TTL monitor has not reaped yet.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.sessions().DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": now}})
	if err != nil {
		return 0, wrap("purge sessions", err)
	}
	return res.DeletedCount, nil
}

func (s *Store) Record(ctx context.Context, upload *models.Upload) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.Collection(store.UploadsCollection).InsertOne(ctx, uploadDocument{
		Key:       upload.Key,
		URL:       upload.URL,
		FileName:  upload.FileName,
		Size:      upload.Size,
		MimeType:  upload.MimeType,
		CreatedAt: upload.CreatedAt,
	})
	if err != nil {
		return wrap("insert upload", err)
	}
	upload.ID = objectIDString(res.InsertedID)
	return nil
}
