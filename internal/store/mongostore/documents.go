// internal/store/mongostore/documents.go
package mongostore

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/javajoker/storefront-backend/internal/models"
)

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Image       string             `bson:"image"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Discount    int                `bson:"discount"`
	Stock       int                `bson:"stock"`
	Rating      float64            `bson:"rating"`
	Reviews     int                `bson:"reviews"`
	Tags        []string           `bson:"tags"`
	Approved    bool               `bson:"approved"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newProductDocument(p *models.Product) productDocument {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return productDocument{
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Discount:    p.Discount,
		Stock:       p.Stock,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Tags:        tags,
		Approved:    p.Approved,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// toModel exposes the ObjectID only as the hex "id".
func (d productDocument) toModel() models.Product {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	updatedAt := d.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = d.CreatedAt
	}
	return models.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       d.Price,
		Image:       d.Image,
		Description: d.Description,
		Category:    d.Category,
		Discount:    d.Discount,
		Stock:       d.Stock,
		Rating:      d.Rating,
		Reviews:     d.Reviews,
		Tags:        tags,
		Approved:    d.Approved,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

type sessionDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SessionID string             `bson:"sessionId"`
	Username  string             `bson:"username"`
	CreatedAt time.Time          `bson:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt"`
}

func (d sessionDocument) toModel() models.Session {
	return models.Session{
		SessionID: d.SessionID,
		Username:  d.Username,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}

type uploadDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Key       string             `bson:"key"`
	URL       string             `bson:"url"`
	FileName  string             `bson:"fileName"`
	Size      int64              `bson:"size"`
	MimeType  string             `bson:"mimeType"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrInvalidID
	}
	return oid, nil
}

func objectIDString(v interface{}) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(v)
}
