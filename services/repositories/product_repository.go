package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lac-hong-legacy/ven_shop/model"
)

var ErrNegativeStock = errors.New("stock cannot go below zero")

type ProductRepository struct {
	BaseRepository
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.withContext(ctx).Where("is_active = ?", true).Order("title ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	if err := r.withContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := r.withContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.ID == "" {
		id, _ := uuid.NewV7()
		product.ID = id.String()
	}
	if err := r.withContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SetStock overwrites the stock level.
func (r *ProductRepository) SetStock(ctx context.Context, id string, quantity int) (*model.Product, error) {
	if quantity < 0 {
		return nil, ErrNegativeStock
	}

	res := r.withContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stock":      quantity,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// AdjustStock shifts the stock level by delta in one statement, refusing any change
// that would leave it negative.
func (r *ProductRepository) AdjustStock(ctx context.Context, id string, delta int) (*model.Product, error) {
	res := r.withContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNegativeStock
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) UpdateImages(ctx context.Context, id, imageURL, thumbnailURL string) error {
	res := r.withContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"image_url":     imageURL,
		"thumbnail_url": thumbnailURL,
		"updated_at":    time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count is used by the seeder to stay idempotent.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.withContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}
