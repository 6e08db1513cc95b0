package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type CartState string

const (
	CartActive    CartState = "active"
	CartReminded  CartState = "reminded"
	CartConverted CartState = "converted"
)

type CartItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
}

// CartItems is stored as a JSON document. Its encoding is deterministic so two equal
// lists produce byte-identical column values.
type CartItems []CartItem

func (c CartItems) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := sonic.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *CartItems) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = CartItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cart items: unsupported column type %T", value)
	}

	items := CartItems{}
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("cart items: %w", err)
	}
	*c = items
	return nil
}

func (CartItems) GormDataType() string {
	return "json"
}

func (CartItems) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "JSON"
}

// Total recomputes the cart value from its lines.
func (c CartItems) Total() float64 {
	var total float64
	for _, item := range c {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// AbandonedCart is the last known snapshot of a browser session's cart.
type AbandonedCart struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SessionID      string     `json:"session_id" gorm:"uniqueIndex;not null;size:128"`
	Email          *string    `json:"email,omitempty" gorm:"size:254"`
	UserID         *string    `json:"user_id,omitempty" gorm:"size:64"`
	Items          CartItems  `json:"items" gorm:"not null"`
	TotalAmount    float64    `json:"total_amount" gorm:"not null;default:0"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null;autoCreateTime:false"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null;index;autoUpdateTime:false"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
	ConvertedAt    *time.Time `json:"converted_at,omitempty"`
}

func (c *AbandonedCart) State() CartState {
	switch {
	case c.ConvertedAt != nil:
		return CartConverted
	case c.ReminderSentAt != nil:
		return CartReminded
	default:
		return CartActive
	}
}
