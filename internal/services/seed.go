// internal/services/seed.go
package services

import (
	"time"

	"github.com/javajoker/storefront-backend/internal/models"
)

type sampleProduct struct {
	name        string
	price       float64
	description string
	category    string
	discount    int
	stock       int
	rating      float64
	reviews     int
	tags        []string
}

var sampleCatalog = []sampleProduct{
	{
		name:        "Premium Wireless Headphones",
		price:       299.99,
		description: "High-quality wireless headphones with noise cancellation and premium sound quality. Perfect for music lovers and professionals.",
		category:    "Electronics",
		discount:    20,
		stock:       15,
		rating:      4.8,
		reviews:     124,
		tags:        []string{"Popular", "Hot Deal"},
	},
	{
		name:        "Smart Fitness Watch",
		price:       199.99,
		description: "Advanced fitness tracking with heart rate monitoring, GPS, and smartphone integration.",
		category:    "Wearables",
		discount:    15,
		stock:       8,
		rating:      4.6,
		reviews:     89,
		tags:        []string{"New", "Limited Stock"},
	},
	{
		name:        "Organic Cotton T-Shirt",
		price:       29.99,
		description: "Comfortable and sustainable organic cotton t-shirt available in multiple colors.",
		category:    "Clothing",
		stock:       25,
		rating:      4.4,
		reviews:     67,
		tags:        []string{"Eco-Friendly"},
	},
	{
		name:        "Professional Camera Lens",
		price:       899.99,
		description: "Professional-grade camera lens with superior optics and build quality.",
		category:    "Photography",
		discount:    10,
		stock:       5,
		rating:      4.9,
		reviews:     156,
		tags:        []string{"Professional", "Limited Stock"},
	},
	{
		name:        "Ergonomic Office Chair",
		price:       449.99,
		description: "Comfortable ergonomic office chair with lumbar support and adjustable height.",
		category:    "Furniture",
		stock:       12,
		rating:      4.7,
		reviews:     203,
		tags:        []string{"Popular"},
	},
	{
		name:        "Bluetooth Speaker",
		price:       79.99,
		description: "Portable Bluetooth speaker with excellent sound quality and long battery life.",
		category:    "Electronics",
		discount:    25,
		stock:       20,
		rating:      4.3,
		reviews:     91,
		tags:        []string{"Hot Deal"},
	},
	{
		name:        "Gaming Mechanical Keyboard",
		price:       159.99,
		description: "RGB backlit mechanical keyboard with tactile switches for gaming and productivity.",
		category:    "Electronics",
		discount:    12,
		stock:       18,
		rating:      4.5,
		reviews:     78,
		tags:        []string{"Gaming", "RGB"},
	},
	{
		name:        "Stainless Steel Water Bottle",
		price:       24.99,
		description: "Insulated stainless steel water bottle that keeps drinks cold for 24 hours or hot for 12 hours.",
		category:    "Lifestyle",
		stock:       35,
		rating:      4.6,
		reviews:     142,
		tags:        []string{"Eco-Friendly", "Insulated"},
	},
	{
		name:        "Wireless Charging Pad",
		price:       39.99,
		description: "Fast wireless charging pad compatible with all Qi-enabled devices.",
		category:    "Electronics",
		discount:    8,
		stock:       22,
		rating:      4.2,
		reviews:     95,
		tags:        []string{"Wireless", "Fast Charging"},
	},
	{
		name:        "Yoga Mat Premium",
		price:       79.99,
		description: "Non-slip premium yoga mat with excellent cushioning and durability.",
		category:    "Sports",
		stock:       14,
		rating:      4.7,
		reviews:     186,
		tags:        []string{"Premium", "Non-slip"},
	},
}

// SampleProducts returns the seed catalog stamped with now.
func SampleProducts(now time.Time) []models.Product {
	products := make([]models.Product, 0, len(sampleCatalog))
	for _, s := range sampleCatalog {
		products = append(products, models.Product{
			Name:        s.name,
			Price:       s.price,
			Image:       models.PlaceholderImage,
			Description: s.description,
			Category:    s.category,
			Discount:    s.discount,
			Stock:       s.stock,
			Rating:      s.rating,
			Reviews:     s.reviews,
			Tags:        append([]string{}, s.tags...),
			Approved:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return products
}
