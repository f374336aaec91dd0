// internal/store/pgstore/rows.go
package pgstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/javajoker/storefront-backend/internal/models"
)

type productRow struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"size:255;not null"`
	Price       float64        `gorm:"type:double precision;not null"`
	Image       string         `gorm:"type:text"`
	Description string         `gorm:"type:text;not null"`
	Category    string         `gorm:"size:100;index:idx_products_category_approved,priority:1"`
	Discount    int            `gorm:"default:0"`
	Stock       int            `gorm:"not null;default:0"`
	Rating      float64        `gorm:"type:double precision;default:0"`
	Reviews     int            `gorm:"default:0"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	Approved    bool           `gorm:"index:idx_products_category_approved,priority:2"`
	CreatedAt   time.Time      `gorm:"autoCreateTime:false;index:idx_products_created_at,sort:desc"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime:false"`
}

func (productRow) TableName() string { return "products" }

func newProductRow(p *models.Product) productRow {
	tags := pq.StringArray{}
	if p.Tags != nil {
		tags = pq.StringArray(append([]string(nil), p.Tags...))
	}
	return productRow{
		ID:          uuid.New(),
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

func (r productRow) toModel() models.Product {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return models.Product{
		ID:          r.ID.String(),
		Name:        r.Name,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
		Category:    r.Category,
		Discount:    r.Discount,
		Stock:       r.Stock,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
		Tags:        tags,
		Approved:    r.Approved,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type sessionRow struct {
	SessionID string    `gorm:"size:64;primaryKey"`
	Username  string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	ExpiresAt time.Time `gorm:"index"`
}

func (sessionRow) TableName() string { return "sessions" }

func (r sessionRow) toModel() models.Session {
	return models.Session{
		SessionID: r.SessionID,
		Username:  r.Username,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}

type uploadRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key       string    `gorm:"size:512;not null"`
	URL       string    `gorm:"type:text;not null"`
	FileName  string    `gorm:"size:255"`
	Size      int64
	MimeType  string    `gorm:"size:100"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (uploadRow) TableName() string { return "uploads" }

// patchColumns maps patch fields to column values.
func patchColumns(patch models.ProductPatch, updatedAt time.Time) map[string]interface{} {
	columns := make(map[string]interface{})
	for field, value := range patch.Fields() {
		if field == "tags" {
			if tags, ok := value.([]string); ok {
				value = pq.StringArray(tags)
			}
		}
		columns[field] = value
	}
	columns["updated_at"] = updatedAt
	return columns
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, models.ErrInvalidID
	}
	return parsed, nil
}
