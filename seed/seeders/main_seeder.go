package seeders

import (
	"context"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll(ctx context.Context) error {
	log.Info("Starting database seeding...")

	productSeeder := NewProductSeeder(s.db)
	if err := productSeeder.SeedProducts(ctx); err != nil {
		log.WithError(err).Error("Product seeding failed")
		return err
	}

	log.Info("Database seeding completed successfully!")
	return nil
}
