package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lac-hong-legacy/ven_shop/model"
)

// CartRepository persists abandoned cart snapshots.
type CartRepository struct {
	BaseRepository
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// reminderResetExpr clears the reminder when the cart contents changed, returning a
// reminded cart to the active state.
const reminderResetExpr = `CASE
	WHEN CAST(excluded.items AS TEXT) <> CAST(abandoned_carts.items AS TEXT)
		OR excluded.total_amount <> abandoned_carts.total_amount
	THEN NULL
	ELSE abandoned_carts.reminder_sent_at
END`

// Upsert writes the snapshot keyed by session id in a single statement. Email and
// user id are only overwritten by non-null values; converted_at is never touched.
func (r *CartRepository) Upsert(ctx context.Context, cart *model.AbandonedCart) error {
	if cart.ID == "" {
		id, _ := uuid.NewV7()
		cart.ID = id.String()
	}
	if cart.Items == nil {
		cart.Items = model.CartItems{}
	}

	return r.withContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.Set{
			{Column: clause.Column{Name: "reminder_sent_at"}, Value: gorm.Expr(reminderResetExpr)},
			{Column: clause.Column{Name: "items"}, Value: gorm.Expr("excluded.items")},
			{Column: clause.Column{Name: "total_amount"}, Value: gorm.Expr("excluded.total_amount")},
			{Column: clause.Column{Name: "email"}, Value: gorm.Expr("COALESCE(excluded.email, abandoned_carts.email)")},
			{Column: clause.Column{Name: "user_id"}, Value: gorm.Expr("COALESCE(excluded.user_id, abandoned_carts.user_id)")},
			{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("excluded.updated_at")},
		},
	}).Create(cart).Error
}

// EmptyAndConvert records an emptied cart on an existing snapshot. It reports
// whether a snapshot existed; an unseen session creates nothing.
func (r *CartRepository) EmptyAndConvert(ctx context.Context, sessionID string, now time.Time) (bool, error) {
	res := r.withContext(ctx).
		Model(&model.AbandonedCart{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"items":        model.CartItems{},
			"total_amount": 0,
			"updated_at":   now,
			"converted_at": gorm.Expr("COALESCE(converted_at, ?)", now),
		})
	return res.RowsAffected > 0, res.Error
}

// MarkConverted sets converted_at once. Repeated calls keep the first timestamp.
func (r *CartRepository) MarkConverted(ctx context.Context, sessionID string, now time.Time) (bool, error) {
	res := r.withContext(ctx).
		Model(&model.AbandonedCart{}).
		Where("session_id = ?", sessionID).
		Update("converted_at", gorm.Expr("COALESCE(converted_at, ?)", now))
	return res.RowsAffected > 0, res.Error
}

// FindStale selects carts eligible for a reminder, oldest first.
func (r *CartRepository) FindStale(ctx context.Context, cutoff time.Time, limit int) ([]model.AbandonedCart, error) {
	var carts []model.AbandonedCart
	err := r.withContext(ctx).
		Where("updated_at < ?", cutoff).
		Where("email IS NOT NULL AND email <> ''").
		Where("reminder_sent_at IS NULL").
		Where("converted_at IS NULL").
		Order("updated_at ASC").
		Limit(limit).
		Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}

// MarkReminded sets reminder_sent_at only if the cart is still unreminded,
// unconverted and unchanged since it was read at seen.
func (r *CartRepository) MarkReminded(ctx context.Context, id string, seen, now time.Time) (bool, error) {
	res := r.withContext(ctx).
		Model(&model.AbandonedCart{}).
		Where("id = ?", id).
		Where("reminder_sent_at IS NULL AND converted_at IS NULL").
		Where("updated_at <= ?", seen).
		Update("reminder_sent_at", now)
	return res.RowsAffected == 1, res.Error
}

func (r *CartRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.AbandonedCart, error) {
	var cart model.AbandonedCart
	if err := r.withContext(ctx).Where("session_id = ?", sessionID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}
