package services

import (
	"context"
	"os"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

const CONTACT_SVC = "contact_svc"

type ContactService struct {
	appContext.DefaultService

	mailer ContactMailer
	inbox  string
}

func NewContactService(mailer ContactMailer, inbox string) *ContactService {
	return &ContactService{mailer: mailer, inbox: inbox}
}

func (svc ContactService) Id() string {
	return CONTACT_SVC
}

func (svc *ContactService) Configure(ctx *appContext.Context) error {
	svc.inbox = shared.SanitizeEmail(os.Getenv("CONTACT_INBOX"))
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContactService) Start() error {
	svc.mailer = svc.Service(EMAIL_SVC).(*EmailService)
	if svc.inbox == "" {
		log.Warn("CONTACT_INBOX not set, contact form submissions will fail")
	}
	return nil
}

// SanitizeContact cleans every field and reports the first invalid one.
func SanitizeContact(req dto.ContactRequest) (dto.ContactRequest, error) {
	clean := dto.ContactRequest{
		Name:    shared.Truncate(shared.SanitizeString(req.Name), shared.MaxContactNameLength),
		Email:   shared.SanitizeEmail(req.Email),
		Subject: shared.Truncate(shared.SanitizeString(req.Subject), shared.MaxItemTitleLength),
		Message: shared.Truncate(shared.SanitizeMultiline(req.Message), shared.MaxContactMsgLength),
	}

	switch {
	case clean.Name == "":
		return clean, shared.NewBadRequestError(nil, "Name is required")
	case clean.Email == "":
		return clean, shared.NewBadRequestError(nil, "A valid email address is required")
	case clean.Message == "":
		return clean, shared.NewBadRequestError(nil, "Message is required")
	}

	if phone := shared.SanitizeString(req.Phone); phone != "" {
		clean.Phone = shared.SanitizePhone(phone)
		if clean.Phone == "" {
			return clean, shared.NewBadRequestError(nil, "Invalid phone number")
		}
	}
	return clean, nil
}

// Submit forwards the message to the shop inbox. Delivery failure is a 502.
func (svc *ContactService) Submit(ctx context.Context, req dto.ContactRequest) error {
	clean, err := SanitizeContact(req)
	if err != nil {
		return err
	}

	if err := svc.mailer.SendContactNotification(ctx, svc.inbox, clean); err != nil {
		log.WithError(err).Error("Contact notification not delivered")
		return shared.NewBadGatewayError(err, "Message could not be delivered, please try again later")
	}

	log.WithField("email_domain", domainOf(clean.Email)).Info("Contact message forwarded")
	return nil
}

func domainOf(email string) string {
	for i := len(email) - 1; i >= 0; i-- {
		if email[i] == '@' {
			return email[i+1:]
		}
	}
	return ""
}
