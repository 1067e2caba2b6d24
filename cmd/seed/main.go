package main

import (
	"context"
	"log"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/config"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository/postgres"
)

// Seeds the catalog with a starter set of products. Safe to run on a fresh
// database; skips entirely if products already exist.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("Failed to ensure database schema", zap.Error(err))
	}

	repos := postgres.NewRepositories(db, logger)

	count, err := repos.Product.Count(ctx)
	if err != nil {
		logger.Fatal("Failed to count products", zap.Error(err))
	}
	if count > 0 {
		logger.Info("Products already exist, skipping seed", zap.Int("count", count))
		return
	}

	products := []domain.Product{
		{
			Name:        "Elegant Dress",
			Price:       2500,
			Description: "Beautiful elegant dress perfect for special occasions",
			Category:    "dresses",
			Gender:      "women",
			Stock:       50,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"Black", "Red", "Navy"},
		},
		{
			Name:        "Chiffon Blouse",
			Price:       1800,
			Description: "Light and airy chiffon blouse for everyday wear",
			Category:    "tops",
			Gender:      "women",
			Stock:       30,
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"White", "Pink", "Blue"},
		},
		{
			Name:        "Business Suit",
			Price:       5500,
			Description: "Sharp two-piece suit for the office and beyond",
			Category:    "suits",
			Gender:      "men",
			Stock:       20,
			Sizes:       []string{"M", "L", "XL", "XXL"},
			Colors:      []string{"Charcoal", "Navy"},
		},
		{
			Name:        "Leather Shoes",
			Price:       3200,
			Description: "Genuine leather shoes, durable and comfortable",
			Category:    "shoes",
			Gender:      "unisex",
			Stock:       25,
			Sizes:       []string{"39", "40", "41", "42", "43", "44"},
			Colors:      []string{"Black", "Brown"},
		},
		{
			Name:        "Designer Handbag",
			Price:       4500,
			Description: "Premium designer handbag with spacious compartments",
			Category:    "accessories",
			Gender:      "women",
			Stock:       15,
			Colors:      []string{"Tan", "Black"},
		},
		{
			Name:        "Casual Shirt",
			Price:       1200,
			Description: "Comfortable casual shirt for daily wear",
			Category:    "shirts",
			Gender:      "men",
			Stock:       40,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"White", "Blue", "Green"},
		},
	}

	for i := range products {
		p := &products[i]
		p.Slug = slug.Make(p.Name)
		if err := repos.Product.Create(ctx, p); err != nil {
			logger.Fatal("Failed to create product", zap.String("name", p.Name), zap.Error(err))
		}
		logger.Info("Seeded product", zap.String("name", p.Name), zap.String("slug", p.Slug))
	}

	logger.Info("Seed complete", zap.Int("products", len(products)))
}
