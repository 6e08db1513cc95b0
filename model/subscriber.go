package model

import "time"

type NewsletterSubscriber struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:254"`
	Source    string    `json:"source" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}
