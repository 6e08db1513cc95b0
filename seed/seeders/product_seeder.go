package seeders

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lac-hong-legacy/ven_shop/model"
	"github.com/lac-hong-legacy/ven_shop/services/repositories"
)

// ProductSeeder fills an empty catalog with a starter range
type ProductSeeder struct {
	repo *repositories.ProductRepository
}

func NewProductSeeder(db *gorm.DB) *ProductSeeder {
	return &ProductSeeder{repo: repositories.NewProductRepository(db)}
}

func starterProducts() []model.Product {
	return []model.Product{
		{Slug: "stoneware-mug", Title: "Stoneware mug", Description: "Wheel-thrown, 350ml, dishwasher safe.", Price: 24.5, Stock: 40},
		{Slug: "dinner-plate", Title: "Dinner plate", Description: "27cm plate in speckled white glaze.", Price: 32, Stock: 25},
		{Slug: "serving-bowl", Title: "Serving bowl", Description: "Wide bowl for salads and pasta.", Price: 58, Stock: 12},
		{Slug: "espresso-cup", Title: "Espresso cup", Description: "90ml cup with a matte exterior.", Price: 16, Stock: 60},
		{Slug: "bud-vase", Title: "Bud vase", Description: "Small vase, one of a kind.", Price: 29, Stock: 0},
	}
}

// SeedProducts is a no-op when the catalog already has products.
func (s *ProductSeeder) SeedProducts(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		log.WithField("count", count).Info("Products already exist, skipping product seeding")
		return nil
	}

	for _, p := range starterProducts() {
		p.Currency = "EUR"
		p.IsActive = true
		if _, err := s.repo.Create(ctx, &p); err != nil {
			return fmt.Errorf("create product %s: %w", p.Slug, err)
		}
	}

	log.WithField("count", len(starterProducts())).Info("Seeded starter products")
	return nil
}
