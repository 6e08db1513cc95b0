package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/model"
	"github.com/lac-hong-legacy/ven_shop/services/mocks"
	"github.com/lac-hong-legacy/ven_shop/services/repositories"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

var cartBase = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type CartServiceSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	mailer *mocks.MockReminderMailer
	repo   *repositories.CartRepository
	svc    *CartService
	now    time.Time
	ctx    context.Context
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceSuite))
}

func (s *CartServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mailer = mocks.NewMockReminderMailer(s.ctrl)
	s.repo = repositories.NewCartRepository(newTestDB(s.T()))
	s.now = cartBase
	s.ctx = context.Background()
	s.svc = NewCartService(s.repo, s.mailer, CartConfig{
		StaleAfter: time.Hour,
		BatchSize:  50,
	}, WithCartClock(func() time.Time { return s.now }))
}

func plateCart(sessionID string, email *string) dto.CartSyncRequest {
	return dto.CartSyncRequest{
		SessionID:   sessionID,
		Email:       email,
		Items:       []dto.CartItemRequest{{Title: "Plate", Quantity: 2, Price: 100}},
		TotalAmount: 200,
	}
}

func (s *CartServiceSuite) stored(sessionID string) *model.AbandonedCart {
	cart, err := s.repo.FindBySessionID(s.ctx, sessionID)
	s.Require().NoError(err)
	return cart
}

func (s *CartServiceSuite) TestSyncThenSweepSendsExactlyOnce() {
	res := s.svc.SyncSnapshot(s.ctx, plateCart("s1", strPtr("x@y.com")), "")
	s.Require().NoError(res.Err)
	s.Equal(dto.SnapshotStored, res.Outcome)

	sweepAt := cartBase.Add(2 * time.Hour)
	s.mailer.EXPECT().
		SendCartReminder(gomock.Any(), "x@y.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, cart *model.AbandonedCart) error {
			s.Equal("s1", cart.SessionID)
			s.Equal(200.0, cart.TotalAmount)
			return nil
		}).
		Times(1)

	summary, err := s.svc.ScanAndRemind(s.ctx, sweepAt)
	s.Require().NoError(err)
	s.Equal(dto.SweepSummary{Sent: 1}, summary)

	cart := s.stored("s1")
	s.Require().NotNil(cart.ReminderSentAt)
	s.True(cart.ReminderSentAt.Equal(sweepAt))
	s.Equal(model.CartReminded, cart.State())

	summary, err = s.svc.ScanAndRemind(s.ctx, sweepAt)
	s.Require().NoError(err)
	s.Equal(dto.SweepSummary{}, summary)
}

func (s *CartServiceSuite) TestConversionSuppressesReminder() {
	s.Require().NoError(s.svc.SyncSnapshot(s.ctx, plateCart("s1", strPtr("x@y.com")), "").Err)

	res := s.svc.MarkConverted(s.ctx, "s1")
	s.Require().NoError(res.Err)
	s.Equal(dto.SnapshotConverted, res.Outcome)

	summary, err := s.svc.ScanAndRemind(s.ctx, cartBase.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Equal(dto.SweepSummary{}, summary)
}

func (s *CartServiceSuite) TestFailedDispatchLeavesCartEligible() {
	s.Require().NoError(s.svc.SyncSnapshot(s.ctx, plateCart("s1", strPtr("x@y.com")), "").Err)
	sweepAt := cartBase.Add(2 * time.Hour)

	gomock.InOrder(
		s.mailer.EXPECT().SendCartReminder(gomock.Any(), "x@y.com", gomock.Any()).Return(errors.New("smtp down")),
		s.mailer.EXPECT().SendCartReminder(gomock.Any(), "x@y.com", gomock.Any()).Return(nil),
	)

	summary, err := s.svc.ScanAndRemind(s.ctx, sweepAt)
	s.Require().NoError(err)
	s.Equal(dto.SweepSummary{Failed: 1}, summary)
	s.Nil(s.stored("s1").ReminderSentAt)

	summary, err = s.svc.ScanAndRemind(s.ctx, sweepAt.Add(time.Hour))
	s.Require().NoError(err)
	s.Equal(dto.SweepSummary{Sent: 1}, summary)
}

func (s *CartServiceSuite) TestCartChangedDuringSendStaysEligible() {
	s.Require().NoError(s.svc.SyncSnapshot(s.ctx, plateCart("s1", strPtr("x@y.com")), "").Err)
	sweepAt := cartBase.Add(2 * time.Hour)

	s.mailer.EXPECT().
		SendCartReminder(gomock.Any(), "x@y.com", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ *model.AbandonedCart) error {
			s.now = cartBase.Add(90 * time.Minute)
			changed := plateCart("s1", nil)
			changed.Items[0].Quantity = 3
			changed.TotalAmount = 300
			s.Require().NoError(s.svc.SyncSnapshot(ctx, changed, "").Err)
			return nil
		})

	summary, err := s.svc.ScanAndRemind(s.ctx, sweepAt)
	s.Require().NoError(err)
	s.Equal(dto.SweepSummary{Sent: 1}, summary)

	cart := s.stored("s1")
	s.Nil(cart.ReminderSentAt)
	s.Equal(300.0, cart.TotalAmount)
	s.Equal(model.CartActive, cart.State())
}

func (s *CartServiceSuite) TestSweepSkipsEmptyCarts() {
	empty := &model.AbandonedCart{
		SessionID: "empty",
		Email:     strPtr("x@y.com"),
		Items:     model.CartItems{},
		CreatedAt: cartBase,
		UpdatedAt: cartBase,
	}
	s.Require().NoError(s.repo.Upsert(s.ctx, empty))

	summary, err := s.svc.ScanAndRemind(s.ctx, cartBase.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Equal(dto.SweepSummary{Skipped: 1}, summary)
}

func (s *CartServiceSuite) TestSweepReportsSelectionFailure() {
	sqlDB, err := s.repo.DB().DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())

	_, err = s.svc.ScanAndRemind(s.ctx, cartBase.Add(2*time.Hour))
	s.Error(err)
}

func (s *CartServiceSuite) TestConcurrentSweepsShareOneRun() {
	s.Require().NoError(s.svc.SyncSnapshot(s.ctx, plateCart("s1", strPtr("x@y.com")), "").Err)
	s.now = cartBase.Add(2 * time.Hour)

	started := make(chan struct{})
	release := make(chan struct{})
	s.mailer.EXPECT().
		SendCartReminder(gomock.Any(), "x@y.com", gomock.Any()).
		DoAndReturn(func(context.Context, string, *model.AbandonedCart) error {
			close(started)
			<-release
			return nil
		}).
		Times(1)

	var wg sync.WaitGroup
	results := make([]dto.SweepSummary, 2)
	run := func(i int) {
		defer wg.Done()
		summary, err := s.svc.RunReminderSweep(s.ctx)
		s.NoError(err)
		results[i] = summary
	}

	wg.Add(1)
	go run(0)
	<-started

	wg.Add(1)
	go run(1)
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Equal(dto.SweepSummary{Sent: 1}, results[0])
	s.Equal(results[0], results[1])
}

func (s *CartServiceSuite) TestSyncNormalizesAndAttachesUser() {
	res := s.svc.SyncSnapshot(s.ctx, plateCart("  s1\x00 ", strPtr(" X@Y.com ")), "user-7")
	s.Require().NoError(res.Err)

	cart := s.stored("s1")
	s.Require().NotNil(cart.Email)
	s.Equal("x@y.com", *cart.Email)
	s.Require().NotNil(cart.UserID)
	s.Equal("user-7", *cart.UserID)
	s.Equal("Plate", cart.Items[0].Title)
}

func (s *CartServiceSuite) TestSyncDropsImplausibleEmail() {
	s.Require().NoError(s.svc.SyncSnapshot(s.ctx, plateCart("s1", strPtr("not-an-email")), "").Err)
	s.Nil(s.stored("s1").Email)
}

func (s *CartServiceSuite) TestSyncRejectsInvalidRequest() {
	res := s.svc.SyncSnapshot(s.ctx, plateCart("", nil), "")
	s.Equal(dto.SnapshotSkipped, res.Outcome)

	appErr, ok := shared.GetAppError(res.Err)
	s.Require().True(ok)
	s.Equal(400, appErr.StatusCode)
}

func (s *CartServiceSuite) TestSyncDropsInvalidLinesOnly() {
	req := plateCart("s1", strPtr("x@y.com"))
	req.Items = append(req.Items,
		dto.CartItemRequest{ProductID: "mug", Title: "Mug", Quantity: 0, Price: 15},
		dto.CartItemRequest{ProductID: "bowl", Title: "Bowl", Quantity: 1, Price: 30},
	)
	req.TotalAmount = 245

	res := s.svc.SyncSnapshot(s.ctx, req, "")
	s.Require().NoError(res.Err)
	s.Equal(dto.SnapshotStored, res.Outcome)

	cart := s.stored("s1")
	s.Require().Len(cart.Items, 2)
	s.Equal("Plate", cart.Items[0].Title)
	s.Empty(cart.Items[0].ProductID)
	s.Equal("bowl", cart.Items[1].ProductID)
	s.Equal(230.0, cart.TotalAmount)
}

func (s *CartServiceSuite) TestSyncWithOnlyInvalidLinesStoresNothing() {
	req := plateCart("s1", strPtr("x@y.com"))
	req.Items = []dto.CartItemRequest{{Title: "Plate", Quantity: 0, Price: 100}}

	res := s.svc.SyncSnapshot(s.ctx, req, "")
	s.Equal(dto.SnapshotSkipped, res.Outcome)
	s.Error(res.Err)

	_, err := s.repo.FindBySessionID(s.ctx, "s1")
	s.Error(err)
}

func (s *CartServiceSuite) TestEmptyCartOnUnknownSessionCreatesNothing() {
	res := s.svc.SyncSnapshot(s.ctx, dto.CartSyncRequest{SessionID: "ghost"}, "")
	s.NoError(res.Err)
	s.Equal(dto.SnapshotSkipped, res.Outcome)

	_, err := s.repo.FindBySessionID(s.ctx, "ghost")
	s.Error(err)
}

func (s *CartServiceSuite) TestEmptyCartConvertsExistingSnapshot() {
	s.Require().NoError(s.svc.SyncSnapshot(s.ctx, plateCart("s1", strPtr("x@y.com")), "").Err)

	s.now = cartBase.Add(time.Minute)
	res := s.svc.SyncSnapshot(s.ctx, dto.CartSyncRequest{SessionID: "s1"}, "")
	s.Require().NoError(res.Err)
	s.Equal(dto.SnapshotConverted, res.Outcome)

	cart := s.stored("s1")
	s.Empty(cart.Items)
	s.Zero(cart.TotalAmount)
	s.Equal(model.CartConverted, cart.State())
}

func (s *CartServiceSuite) TestMarkConvertedIsIdempotent() {
	s.Require().NoError(s.svc.SyncSnapshot(s.ctx, plateCart("s1", nil), "").Err)

	s.Equal(dto.SnapshotConverted, s.svc.MarkConverted(s.ctx, "s1").Outcome)
	first := s.stored("s1").ConvertedAt
	s.Require().NotNil(first)

	s.now = cartBase.Add(time.Hour)
	s.Equal(dto.SnapshotConverted, s.svc.MarkConverted(s.ctx, "s1").Outcome)
	s.True(s.stored("s1").ConvertedAt.Equal(*first))

	s.Equal(dto.SnapshotSkipped, s.svc.MarkConverted(s.ctx, "unknown").Outcome)
	s.Equal(dto.SnapshotSkipped, s.svc.MarkConverted(s.ctx, "").Outcome)
}
