package services

import (
	"context"
	"errors"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/model"
	"github.com/lac-hong-legacy/ven_shop/services/repositories"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

const CART_SVC = "cart_svc"

type CartConfig struct {
	StaleAfter time.Duration
	BatchSize  int
	// SendRate caps reminders per second. Zero or less means unpaced.
	SendRate float64
	// ReminderInterval runs the sweep in-process when positive.
	ReminderInterval time.Duration
}

func CartConfigFromEnv() CartConfig {
	return CartConfig{
		StaleAfter:       getEnvDuration("CART_STALE_AFTER", time.Hour),
		BatchSize:        getEnvInt("CART_REMINDER_BATCH", 50),
		SendRate:         getEnvFloat("CART_REMINDER_SEND_RATE", 2),
		ReminderInterval: getEnvDuration("CART_REMINDER_INTERVAL", 0),
	}
}

type CartService struct {
	appContext.DefaultService

	repo   *repositories.CartRepository
	mailer ReminderMailer
	cfg    CartConfig
	now    func() time.Time
	tracer trace.Tracer

	sweeps        singleflight.Group
	stopScheduler context.CancelFunc
}

type CartOption func(*CartService)

func WithCartClock(now func() time.Time) CartOption {
	return func(s *CartService) { s.now = now }
}

// NewCartService builds the service outside the container, for the CLI and tests.
func NewCartService(repo *repositories.CartRepository, mailer ReminderMailer, cfg CartConfig, opts ...CartOption) *CartService {
	svc := &CartService{
		repo:   repo,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
		tracer: otel.Tracer("github.com/lac-hong-legacy/ven_shop/services/cart"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.cfg.BatchSize <= 0 {
		svc.cfg.BatchSize = 50
	}
	if svc.cfg.StaleAfter <= 0 {
		svc.cfg.StaleAfter = time.Hour
	}
	return svc
}

func (svc CartService) Id() string {
	return CART_SVC
}

func (svc *CartService) Configure(ctx *appContext.Context) error {
	svc.cfg = CartConfigFromEnv()
	svc.now = time.Now
	svc.tracer = otel.Tracer("github.com/lac-hong-legacy/ven_shop/services/cart")
	return svc.DefaultService.Configure(ctx)
}

func (svc *CartService) Start() error {
	db := svc.Service(DATABASE_SVC).(Database)
	svc.repo = repositories.NewCartRepository(db.Db())
	svc.mailer = svc.Service(EMAIL_SVC).(*EmailService)

	if svc.cfg.ReminderInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		svc.stopScheduler = cancel
		svc.StartScheduler(ctx, svc.cfg.ReminderInterval)
	}
	return nil
}

func (svc *CartService) Shutdown() {
	if svc.stopScheduler != nil {
		svc.stopScheduler()
	}
}

func (svc *CartService) Config() CartConfig {
	return svc.cfg
}

func (svc *CartService) clock() time.Time {
	return svc.now().UTC().Truncate(time.Microsecond)
}

// SyncSnapshot upserts the cart snapshot for the session. It never fails the caller:
// problems are reported through the result and logged.
func (svc *CartService) SyncSnapshot(ctx context.Context, req dto.CartSyncRequest, userID string) dto.SnapshotResult {
	res := svc.syncSnapshot(ctx, req, userID)
	cartSnapshotWritesTotal.WithLabelValues(string(res.Outcome)).Inc()

	if res.Err != nil {
		log.WithError(res.Err).WithField("outcome", res.Outcome).Warn("Cart snapshot not stored")
	}
	return res
}

func (svc *CartService) syncSnapshot(ctx context.Context, req dto.CartSyncRequest, userID string) dto.SnapshotResult {
	if err := req.Validate(); err != nil {
		return dto.SnapshotResult{Outcome: dto.SnapshotSkipped, Err: shared.NewBadRequestError(err, "invalid cart snapshot")}
	}

	sessionID := shared.Truncate(shared.SanitizeString(req.SessionID), shared.MaxSessionIDLength)
	if sessionID == "" {
		return dto.SnapshotResult{Outcome: dto.SnapshotSkipped, Err: shared.NewBadRequestError(nil, "missing session id")}
	}

	now := svc.clock()

	if len(req.Items) == 0 {
		existed, err := svc.repo.EmptyAndConvert(ctx, sessionID, now)
		if err != nil {
			return dto.SnapshotResult{Outcome: dto.SnapshotSkipped, Err: err}
		}
		if !existed {
			return dto.SnapshotResult{Outcome: dto.SnapshotSkipped}
		}
		return dto.SnapshotResult{Outcome: dto.SnapshotConverted}
	}

	items := sanitizeCartItems(req.Items)
	if len(items) == 0 {
		return dto.SnapshotResult{Outcome: dto.SnapshotSkipped, Err: shared.NewBadRequestError(nil, "no valid cart items")}
	}

	total := req.TotalAmount
	if len(items) < len(req.Items) {
		total = items.Total()
	}

	cart := &model.AbandonedCart{
		SessionID:   sessionID,
		Items:       items,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.Email != nil {
		if email := shared.SanitizeEmail(*req.Email); email != "" {
			cart.Email = &email
		}
	}
	if userID = strings.TrimSpace(userID); userID != "" {
		cart.UserID = &userID
	}

	if err := svc.repo.Upsert(ctx, cart); err != nil {
		return dto.SnapshotResult{Outcome: dto.SnapshotSkipped, Err: err}
	}
	return dto.SnapshotResult{Outcome: dto.SnapshotStored}
}

// sanitizeCartItems keeps the lines that pass validation and cleans their strings.
// Dropped lines are logged at debug level.
func sanitizeCartItems(in []dto.CartItemRequest) model.CartItems {
	items := make(model.CartItems, 0, len(in))
	for i, item := range in {
		if err := item.Validate(); err != nil {
			log.WithError(err).WithField("line", i).Debug("Invalid cart line dropped")
			continue
		}
		items = append(items, model.CartItem{
			ProductID: shared.Truncate(shared.SanitizeString(item.ProductID), 64),
			Title:     shared.Truncate(shared.SanitizeString(item.Title), shared.MaxItemTitleLength),
			Quantity:  item.Quantity,
			Price:     item.Price,
			Image:     shared.Truncate(shared.SanitizeString(item.Image), shared.MaxItemImageLength),
		})
	}
	return items
}

// MarkConverted records an order for the session. Idempotent and best-effort.
func (svc *CartService) MarkConverted(ctx context.Context, sessionID string) dto.SnapshotResult {
	res := svc.markConverted(ctx, sessionID)
	cartSnapshotWritesTotal.WithLabelValues(string(res.Outcome)).Inc()

	if res.Err != nil {
		log.WithError(res.Err).Warn("Cart conversion not recorded")
	}
	return res
}

func (svc *CartService) markConverted(ctx context.Context, sessionID string) dto.SnapshotResult {
	sessionID = shared.Truncate(shared.SanitizeString(sessionID), shared.MaxSessionIDLength)
	if sessionID == "" {
		return dto.SnapshotResult{Outcome: dto.SnapshotSkipped, Err: shared.NewBadRequestError(nil, "missing session id")}
	}

	existed, err := svc.repo.MarkConverted(ctx, sessionID, svc.clock())
	if err != nil {
		return dto.SnapshotResult{Outcome: dto.SnapshotSkipped, Err: err}
	}
	if !existed {
		return dto.SnapshotResult{Outcome: dto.SnapshotSkipped}
	}
	return dto.SnapshotResult{Outcome: dto.SnapshotConverted}
}

// ScanAndRemind sends one reminder per stale, unreminded, unconverted cart with an
// email, up to the batch size. Only a failing selection query is returned as an error.
func (svc *CartService) ScanAndRemind(ctx context.Context, now time.Time) (dto.SweepSummary, error) {
	ctx, span := svc.tracer.Start(ctx, "cart.ScanAndRemind")
	defer span.End()

	var summary dto.SweepSummary
	cutoff := now.Add(-svc.cfg.StaleAfter)

	carts, err := svc.repo.FindStale(ctx, cutoff, svc.cfg.BatchSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select stale carts")
		return summary, err
	}
	span.SetAttributes(attribute.Int("cart.selected", len(carts)))

	limit := rate.Inf
	if svc.cfg.SendRate > 0 {
		limit = rate.Limit(svc.cfg.SendRate)
	}
	pacer := rate.NewLimiter(limit, 1)

	for i := range carts {
		cart := &carts[i]
		logger := log.WithFields(log.Fields{"cart_id": cart.ID})

		if len(cart.Items) == 0 || cart.Email == nil || *cart.Email == "" {
			summary.Skipped++
			continue
		}

		if err := pacer.Wait(ctx); err != nil {
			logger.WithError(err).Warn("Reminder sweep interrupted")
			summary.Failed++
			continue
		}

		if err := svc.mailer.SendCartReminder(ctx, *cart.Email, cart); err != nil {
			logger.WithError(err).Warn("Cart reminder not sent, will retry on next sweep")
			summary.Failed++
			continue
		}

		// The reminder is out; a failure past this point can only cause a repeat send.
		marked, err := svc.repo.MarkReminded(ctx, cart.ID, cart.UpdatedAt, now)
		switch {
		case err != nil:
			logger.WithError(err).Error("Cart reminder sent but not recorded")
		case !marked:
			logger.Info("Cart changed during sweep, left eligible")
		}
		summary.Sent++
	}

	cartRemindersTotal.WithLabelValues("sent").Add(float64(summary.Sent))
	cartRemindersTotal.WithLabelValues("failed").Add(float64(summary.Failed))
	cartRemindersTotal.WithLabelValues("skipped").Add(float64(summary.Skipped))

	span.SetAttributes(
		attribute.Int("cart.sent", summary.Sent),
		attribute.Int("cart.failed", summary.Failed),
		attribute.Int("cart.skipped", summary.Skipped),
	)

	log.WithFields(log.Fields{
		"sent":    summary.Sent,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
	}).Info("Cart reminder sweep finished")

	return summary, nil
}

// RunReminderSweep runs ScanAndRemind at the current time. Concurrent callers share
// one run and its result. The sweep outlives a cancelled caller.
func (svc *CartService) RunReminderSweep(ctx context.Context) (dto.SweepSummary, error) {
	v, err, _ := svc.sweeps.Do("sweep", func() (interface{}, error) {
		return svc.ScanAndRemind(context.WithoutCancel(ctx), svc.clock())
	})
	if err != nil {
		return dto.SweepSummary{}, err
	}

	summary, ok := v.(dto.SweepSummary)
	if !ok {
		return dto.SweepSummary{}, errors.New("unexpected sweep result")
	}
	return summary, nil
}

// StartScheduler runs the sweep every interval until ctx is cancelled.
func (svc *CartService) StartScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	log.WithField("interval", interval.String()).Info("In-process cart reminder scheduler started")

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := svc.RunReminderSweep(ctx); err != nil {
					log.WithError(err).Error("Scheduled cart reminder sweep failed")
				}
			}
		}
	}()
}
