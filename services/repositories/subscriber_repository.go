package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lac-hong-legacy/ven_shop/model"
)

type SubscriberRepository struct {
	BaseRepository
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Subscribe inserts the address unless it is already present. created reports
// whether a new row was written.
func (r *SubscriberRepository) Subscribe(ctx context.Context, email, source string) (created bool, err error) {
	id, _ := uuid.NewV7()
	sub := &model.NewsletterSubscriber{
		ID:        id.String(),
		Email:     email,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}

	res := r.withContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(sub)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *SubscriberRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.withContext(ctx).Model(&model.NewsletterSubscriber{}).Count(&n).Error
	return n, err
}
