package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/middleware"
	"github.com/lac-hong-legacy/ven_shop/services/ratelimit"
)

const RATE_LIMIT_SVC = "rate_limit_svc"

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

// RateLimitService owns the process limiter and hands out per-tier middleware.
type RateLimitService struct {
	appContext.DefaultService

	policies ratelimit.Policies
	limiter  *ratelimit.Limiter
	memory   *ratelimit.MemoryStore
	backend  string

	stopJanitor context.CancelFunc
}

// NewRateLimitService wraps a ready limiter, for tests and the CLI.
func NewRateLimitService(limiter *ratelimit.Limiter) *RateLimitService {
	return &RateLimitService{limiter: limiter, backend: backendMemory}
}

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	policies, err := ratelimit.PoliciesFromEnv(os.Getenv)
	if err != nil {
		return fmt.Errorf("rate limit policies: %w", err)
	}
	svc.policies = policies

	svc.backend = strings.ToLower(os.Getenv("RATE_LIMIT_BACKEND"))
	switch svc.backend {
	case "", backendMemory, backendRedis:
	default:
		return fmt.Errorf("RATE_LIMIT_BACKEND: unknown backend %q", svc.backend)
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	redisSvc := svc.Service(REDIS_SVC).(*RedisService)

	svc.memory = ratelimit.NewMemoryStore(
		ratelimit.WithJanitorInterval(getEnvDuration("RATE_LIMIT_JANITOR_INTERVAL", 5*time.Minute)),
	)

	var store ratelimit.CounterStore = svc.memory
	if svc.backend == backendRedis || (svc.backend == "" && redisSvc.Enabled()) {
		if !redisSvc.Enabled() {
			return fmt.Errorf("RATE_LIMIT_BACKEND=redis requires REDIS_ADDR")
		}
		store = ratelimit.NewRedisStore(redisSvc.GetClient())
		svc.backend = backendRedis
	} else {
		svc.backend = backendMemory
	}

	svc.limiter = ratelimit.NewLimiter(store, svc.policies,
		ratelimit.WithLocalStore(svc.memory),
		ratelimit.WithTimeout(getEnvDuration("RATE_LIMIT_TIMEOUT", ratelimit.DefaultTimeout)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	svc.stopJanitor = cancel
	svc.memory.StartJanitor(ctx)

	log.WithField("backend", svc.backend).Info("Rate limiter ready")
	return nil
}

func (svc *RateLimitService) Shutdown() {
	if svc.stopJanitor != nil {
		svc.stopJanitor()
	}
}

// RateLimit returns the admission middleware for tier. Unknown tiers panic here, at
// route registration.
func (svc *RateLimitService) RateLimit(tier string) fiber.Handler {
	return middleware.RateLimit(svc.limiter, tier)
}
