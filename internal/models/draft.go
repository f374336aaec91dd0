// internal/models/draft.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/javajoker/storefront-backend/internal/utils"
)

// Default values applied to fields a caller leaves out on create.
const (
	DefaultRating   = 4.0
	DefaultReviews  = 0
	DefaultDiscount = 0
	DefaultApproved = true
)

// ProductDraft carries the caller-supplied fields of a new product. Pointer
// fields distinguish "omitted" from zero values, so stock=0 is accepted while
// a missing stock is rejected. Field order matters: the first failing field
// in declaration order is the one reported.
type ProductDraft struct {
	Name        *string  `json:"name" validate:"required,notblank"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description *string  `json:"description" validate:"required,notblank"`
	Category    *string  `json:"category" validate:"required,notblank"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Image       *string  `json:"image,omitempty"`
	Discount    *int     `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Reviews     *int     `json:"reviews,omitempty" validate:"omitempty,gte=0"`
	Tags        []string `json:"tags,omitempty"`
	Approved    *bool    `json:"approved,omitempty"`
}

// Validate checks the draft without building a product.
func (d *ProductDraft) Validate() error {
	return validationFailure(utils.ValidateStruct(d))
}

// ToProduct validates the draft and builds a product with defaults applied
// and both timestamps set to now. The ID is left empty for the store.
func (d *ProductDraft) ToProduct(now time.Time) (*Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	p := &Product{
		Name:        strings.TrimSpace(*d.Name),
		Price:       *d.Price,
		Description: strings.TrimSpace(*d.Description),
		Category:    strings.TrimSpace(*d.Category),
		Stock:       *d.Stock,
		Image:       PlaceholderImage,
		Discount:    DefaultDiscount,
		Rating:      DefaultRating,
		Reviews:     DefaultReviews,
		Tags:        []string{},
		Approved:    DefaultApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if d.Image != nil && strings.TrimSpace(*d.Image) != "" {
		p.Image = strings.TrimSpace(*d.Image)
	}
	if d.Discount != nil {
		p.Discount = *d.Discount
	}
	if d.Rating != nil {
		p.Rating = *d.Rating
	}
	if d.Reviews != nil {
		p.Reviews = *d.Reviews
	}
	if d.Tags != nil {
		p.Tags = cleanTags(d.Tags)
	}
	if d.Approved != nil {
		p.Approved = *d.Approved
	}

	return p, nil
}

// ProductPatch is a partial update. Identifier and timestamps are not
// client-writable and have no field here.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,notblank"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Image       *string  `json:"image,omitempty"`
	Description *string  `json:"description,omitempty" validate:"omitempty,notblank"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,notblank"`
	Discount    *int     `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Reviews     *int     `json:"reviews,omitempty" validate:"omitempty,gte=0"`
	Tags        []string `json:"tags,omitempty"`
	Approved    *bool    `json:"approved,omitempty"`
}

func (p *ProductPatch) Validate() error {
	return validationFailure(utils.ValidateStruct(p))
}

// IsEmpty reports whether the patch changes nothing.
func (p *ProductPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the set fields keyed by their document field name.
func (p *ProductPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Name != nil {
		fields["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Description != nil {
		fields["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		fields["category"] = strings.TrimSpace(*p.Category)
	}
	if p.Discount != nil {
		fields["discount"] = *p.Discount
	}
	if p.Stock != nil {
		fields["stock"] = *p.Stock
	}
	if p.Rating != nil {
		fields["rating"] = *p.Rating
	}
	if p.Reviews != nil {
		fields["reviews"] = *p.Reviews
	}
	if p.Tags != nil {
		fields["tags"] = cleanTags(p.Tags)
	}
	if p.Approved != nil {
		fields["approved"] = *p.Approved
	}
	return fields
}

// Apply merges the patch into product and stamps updatedAt.
func (p *ProductPatch) Apply(product *Product, updatedAt time.Time) {
	if p.Name != nil {
		product.Name = strings.TrimSpace(*p.Name)
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
	if p.Description != nil {
		product.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		product.Category = strings.TrimSpace(*p.Category)
	}
	if p.Discount != nil {
		product.Discount = *p.Discount
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Rating != nil {
		product.Rating = *p.Rating
	}
	if p.Reviews != nil {
		product.Reviews = *p.Reviews
	}
	if p.Tags != nil {
		product.Tags = cleanTags(p.Tags)
	}
	if p.Approved != nil {
		product.Approved = *p.Approved
	}
	product.UpdatedAt = updatedAt
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func validationFailure(err error) error {
	if err == nil {
		return nil
	}
	if fe, ok := utils.FirstValidationError(err); ok {
		return &ValidationError{Field: fe.Field, Tag: fe.Tag, Message: fe.Message}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
