package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lac-hong-legacy/ven_shop/services/mocks"
	"github.com/lac-hong-legacy/ven_shop/services/repositories"
)

func TestSubscribeSendsWelcomeOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockWelcomeMailer(ctrl)
	repo := repositories.NewSubscriberRepository(newTestDB(t))
	svc := NewNewsletterService(repo, mailer)
	ctx := context.Background()

	mailer.EXPECT().SendNewsletterWelcome(gomock.Any(), "reader@example.com").Return(nil).Times(1)

	resp, err := svc.Subscribe(ctx, " Reader@Example.com ", "footer")
	require.NoError(t, err)
	assert.True(t, resp.Subscribed)
	assert.False(t, resp.Existing)

	resp, err = svc.Subscribe(ctx, "reader@example.com", "popup")
	require.NoError(t, err)
	assert.True(t, resp.Subscribed)
	assert.True(t, resp.Existing)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSubscribeKeepsSubscriberWhenWelcomeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mocks.NewMockWelcomeMailer(ctrl)
	repo := repositories.NewSubscriberRepository(newTestDB(t))
	svc := NewNewsletterService(repo, mailer)

	mailer.EXPECT().SendNewsletterWelcome(gomock.Any(), gomock.Any()).Return(errors.New("resend down"))

	resp, err := svc.Subscribe(context.Background(), "reader@example.com", "")
	require.NoError(t, err)
	assert.True(t, resp.Subscribed)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewNewsletterService(repositories.NewSubscriberRepository(newTestDB(t)), mocks.NewMockWelcomeMailer(ctrl))

	for _, email := range []string{"", "not-an-email", "a@b", "two@@example.com"} {
		_, err := svc.Subscribe(context.Background(), email, "")
		assertStatus(t, err, 400)
	}
}
