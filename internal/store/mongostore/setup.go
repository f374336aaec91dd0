// internal/store/mongostore/setup.go
package mongostore

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/javajoker/storefront-backend/internal/store"
)

// Setup creates missing collections and ensures indexes. Sessions carry a
// TTL index on expiresAt so the server reaps expired logins.
func (s *Store) Setup(ctx context.Context) (*store.SetupReport, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, wrap("list collections", err)
	}
	existing := make(map[string]bool, len(names))
	for _, name := range names {
		existing[name] = true
	}

	report := &store.SetupReport{Collections: make(map[string]string)}
	for _, name := range []string{store.ProductsCollection, store.SessionsCollection, store.UploadsCollection} {
		if existing[name] {
			report.Collections[name] = store.CollectionExisting
			continue
		}
		if err := s.db.CreateCollection(ctx, name); err != nil {
			return nil, wrap("create collection "+name, err)
		}
		report.Collections[name] = store.CollectionCreated
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	logrus.WithField("collections", report.Collections).Info("MongoDB setup completed")
	return report, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		store.ProductsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "approved", Value: 1}}},
		},
		store.SessionsCollection: {
			{
				Keys:    bson.D{{Key: "expiresAt", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(0),
			},
			{
				Keys:    bson.D{{Key: "sessionId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for collection, specs := range indexes {
		if _, err := s.db.Collection(collection).Indexes().CreateMany(ctx, specs); err != nil {
			return wrap("create indexes on "+collection, err)
		}
	}
	return nil
}
