package model

import "time"

type Product struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;not null;size:120"`
	Title        string    `json:"title" gorm:"not null;size:200"`
	Description  string    `json:"description" gorm:"type:text"`
	Price        float64   `json:"price" gorm:"not null"`
	Currency     string    `json:"currency" gorm:"not null;size:3;default:'EUR'"`
	Stock        int       `json:"stock" gorm:"not null;default:0"`
	ImageURL     string    `json:"image_url,omitempty" gorm:"size:500"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty" gorm:"size:500"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}
