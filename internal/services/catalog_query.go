// internal/services/catalog_query.go
package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/javajoker/storefront-backend/internal/models"
)

// The storefront price slider spans [DefaultPriceMin, DefaultPriceMax]. That
// exact range means "no price filter", so products priced above the slider
// bound stay visible until the shopper narrows the range.
const (
	DefaultPriceMin = 0.0
	DefaultPriceMax = 1000.0
)

// Storefront sort keys.
const (
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// Admin dashboard sort keys.
const (
	AdminSortName     = "name"
	AdminSortPrice    = "price"
	AdminSortCategory = "category"
	AdminSortStock    = "stock"
)

type CatalogQuery struct {
	SearchText   string   `json:"search"`
	Categories   []string `json:"categories"`
	PriceMin     float64  `json:"minPrice"`
	PriceMax     float64  `json:"maxPrice"`
	DiscountOnly bool     `json:"discountOnly"`
	SortKey      string   `json:"sort"`
}

// DefaultCatalogQuery matches everything and sorts by name.
func DefaultCatalogQuery() CatalogQuery {
	return CatalogQuery{
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
		SortKey:  SortName,
	}
}

// HasDefaultPriceRange reports whether the price filter is disabled.
func (q CatalogQuery) HasDefaultPriceRange() bool {
	return q.PriceMin == DefaultPriceMin && q.PriceMax == DefaultPriceMax
}

func (q CatalogQuery) matches(p models.Product, search string, categories map[string]bool) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(p.Name), search) &&
		!strings.Contains(strings.ToLower(p.Description), search) {
		return false
	}

	if len(categories) > 0 && !categories[p.Category] {
		return false
	}

	if !q.HasDefaultPriceRange() {
		price := p.DiscountedPrice()
		if price < q.PriceMin || price > q.PriceMax {
			return false
		}
	}

	if q.DiscountOnly && p.Discount == 0 {
		return false
	}

	return true
}

// FilterAndSort returns the products matching q in q.SortKey order. It does
// not filter by approval and never modifies products.
func FilterAndSort(products []models.Product, q CatalogQuery) []models.Product {
	search := strings.ToLower(strings.TrimSpace(q.SearchText))

	var categories map[string]bool
	if len(q.Categories) > 0 {
		categories = make(map[string]bool, len(q.Categories))
		for _, c := range q.Categories {
			categories[c] = true
		}
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q.matches(p, search, categories) {
			out = append(out, p.Clone())
		}
	}

	sortProducts(out, q.SortKey)
	return out
}

func sortProducts(products []models.Product, key string) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DiscountedPrice() < products[j].DiscountedPrice()
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DiscountedPrice() > products[j].DiscountedPrice()
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	default:
		sortByText(products, func(p models.Product) string { return p.Name })
	}
}

// sortByText orders by locale-aware comparison. Collators are not safe for
// concurrent use, so each call builds its own.
func sortByText(products []models.Product, text func(models.Product) string) {
	c := collate.New(language.English)
	sort.SliceStable(products, func(i, j int) bool {
		return c.CompareString(text(products[i]), text(products[j])) < 0
	})
}

// AdminSort orders a copy of products for the dashboard. Unknown keys keep
// the source order.
func AdminSort(products []models.Product, key string) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}

	switch key {
	case AdminSortName:
		sortByText(out, func(p models.Product) string { return p.Name })
	case AdminSortPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case AdminSortCategory:
		sortByText(out, func(p models.Product) string { return p.Category })
	case AdminSortStock:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stock > out[j].Stock })
	}
	return out
}

// ApprovedOnly keeps approved products in source order.
func ApprovedOnly(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Approved {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Categories returns distinct categories in first-seen order.
func Categories(products []models.Product) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Related returns up to limit products sharing the category of product,
// excluding product itself.
func Related(products []models.Product, product models.Product, limit int) []models.Product {
	out := make([]models.Product, 0, limit)
	for _, p := range products {
		if len(out) >= limit {
			break
		}
		if p.ID == product.ID || p.Category != product.Category {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}
