// internal/models/draft_test.go
package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func validDraft() *ProductDraft {
	return &ProductDraft{
		Name:        strPtr("Desk Lamp"),
		Price:       floatPtr(39.5),
		Description: strPtr("A lamp for the desk"),
		Category:    strPtr("Home"),
		Stock:       intPtr(4),
	}
}

func TestDraftDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	p, err := validDraft().ToProduct(now)
	require.NoError(t, err)

	assert.Empty(t, p.ID)
	assert.Equal(t, "Desk Lamp", p.Name)
	assert.Equal(t, PlaceholderImage, p.Image)
	assert.Equal(t, DefaultRating, p.Rating)
	assert.Equal(t, DefaultReviews, p.Reviews)
	assert.Equal(t, DefaultDiscount, p.Discount)
	assert.True(t, p.Approved)
	assert.Equal(t, []string{}, p.Tags)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestDraftKeepsSuppliedOptionals(t *testing.T) {
	d := validDraft()
	d.Image = strPtr(" /lamp.png ")
	d.Discount = intPtr(15)
	d.Rating = floatPtr(3.5)
	d.Approved = boolPtr(false)
	d.Tags = []string{" New ", "", "Sale"}

	p, err := d.ToProduct(time.Now())
	require.NoError(t, err)

	assert.Equal(t, "/lamp.png", p.Image)
	assert.Equal(t, 15, p.Discount)
	assert.Equal(t, 3.5, p.Rating)
	assert.False(t, p.Approved)
	assert.Equal(t, []string{"New", "Sale"}, p.Tags)
}

func TestDraftZeroStockIsPresent(t *testing.T) {
	d := validDraft()
	d.Stock = intPtr(0)

	p, err := d.ToProduct(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestDraftMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(d *ProductDraft)
		field string
	}{
		{"name", func(d *ProductDraft) { d.Name = nil }, "name"},
		{"blank name", func(d *ProductDraft) { d.Name = strPtr("   ") }, "name"},
		{"price", func(d *ProductDraft) { d.Price = nil }, "price"},
		{"description", func(d *ProductDraft) { d.Description = nil }, "description"},
		{"category", func(d *ProductDraft) { d.Category = nil }, "category"},
		{"stock", func(d *ProductDraft) { d.Stock = nil }, "stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.edit(d)

			_, err := d.ToProduct(time.Now())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.True(t, verr.Missing())
			assert.Equal(t, "Missing required field: "+tt.field, err.Error())
		})
	}
}

func TestDraftReportsFirstMissingField(t *testing.T) {
	d := &ProductDraft{Stock: intPtr(1)}

	err := d.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
}

func TestDraftRejectsOutOfRange(t *testing.T) {
	d := validDraft()
	d.Discount = intPtr(120)

	err := d.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "discount", verr.Field)
	assert.False(t, verr.Missing())
}

func TestPatchFieldsAndApply(t *testing.T) {
	patch := &ProductPatch{
		Name:     strPtr(" Lamp "),
		Stock:    intPtr(0),
		Approved: boolPtr(false),
	}
	require.NoError(t, patch.Validate())
	assert.False(t, patch.IsEmpty())
	assert.Equal(t, map[string]interface{}{
		"name":     "Lamp",
		"stock":    0,
		"approved": false,
	}, patch.Fields())

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	p := Product{ID: "x", Name: "Old", Price: 10, Stock: 5, Approved: true, CreatedAt: created, UpdatedAt: created}
	patch.Apply(&p, updated)

	assert.Equal(t, "x", p.ID)
	assert.Equal(t, "Lamp", p.Name)
	assert.Equal(t, 10.0, p.Price)
	assert.Equal(t, 0, p.Stock)
	assert.False(t, p.Approved)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, updated, p.UpdatedAt)
}

func TestEmptyPatch(t *testing.T) {
	assert.True(t, (&ProductPatch{}).IsEmpty())
}

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: now}
	assert.True(t, s.Expired(now))
	assert.False(t, s.Expired(now.Add(-time.Second)))
}

func TestErrorWrapping(t *testing.T) {
	assert.ErrorIs(t, ErrDisconnected, ErrStoreUnavailable)
	assert.ErrorIs(t, ErrStoreNotConfigured, ErrStoreUnavailable)
	assert.NotErrorIs(t, ErrNotFound, ErrStoreUnavailable)
}
