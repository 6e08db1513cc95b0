package services

import (
	"context"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/model"
)

//go:generate mockgen -source=mailer.go -destination=mocks/mock_mailer.go -package=mocks

// ReminderMailer delivers the abandoned cart reminder.
type ReminderMailer interface {
	SendCartReminder(ctx context.Context, to string, cart *model.AbandonedCart) error
}

type WelcomeMailer interface {
	SendNewsletterWelcome(ctx context.Context, to string) error
}

type ContactMailer interface {
	SendContactNotification(ctx context.Context, inbox string, req dto.ContactRequest) error
}
