package services

import (
	"context"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/services/repositories"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

const NEWSLETTER_SVC = "newsletter_svc"

type NewsletterService struct {
	appContext.DefaultService

	repo   *repositories.SubscriberRepository
	mailer WelcomeMailer
}

func NewNewsletterService(repo *repositories.SubscriberRepository, mailer WelcomeMailer) *NewsletterService {
	return &NewsletterService{repo: repo, mailer: mailer}
}

func (svc NewsletterService) Id() string {
	return NEWSLETTER_SVC
}

func (svc *NewsletterService) Start() error {
	db := svc.Service(DATABASE_SVC).(Database)
	svc.repo = repositories.NewSubscriberRepository(db.Db())
	svc.mailer = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

// Subscribe stores the address once. Only a new subscriber gets the welcome mail,
// and a failed welcome mail does not undo the subscription.
func (svc *NewsletterService) Subscribe(ctx context.Context, email, source string) (*dto.NewsletterResponse, error) {
	clean := shared.SanitizeEmail(email)
	if clean == "" {
		return nil, shared.NewBadRequestError(nil, "Invalid email address")
	}
	source = shared.Truncate(shared.SanitizeString(source), shared.MaxSourceLength)
	if source == "" {
		source = "website"
	}

	created, err := svc.repo.Subscribe(ctx, clean, source)
	if err != nil {
		return nil, HandleDBError(err)
	}
	if !created {
		return &dto.NewsletterResponse{Subscribed: true, Existing: true}, nil
	}

	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := svc.mailer.SendNewsletterWelcome(mailCtx, clean); err != nil {
		log.WithError(err).WithField("source", source).Warn("Newsletter welcome mail not sent")
	}

	return &dto.NewsletterResponse{Subscribed: true}, nil
}
