package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/auth"
	"github.com/spec-kit/user-directory/internal/config"
	"github.com/spec-kit/user-directory/internal/domain"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// Counter increments a window key and arms its expiry on the first hit.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type redisCounter struct {
	client *redis.Client
}

func (r redisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

func (r redisCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, key, ttl).Err()
}

// Limiter is a redis-backed fixed-window request gate with per-role tiers.
// Authenticated callers are counted per account; guests per client IP.
// When the backing counter is unreachable the limiter fails open.
type Limiter struct {
	counter Counter
	cfg     config.RateLimitConfig
	logger  *zap.Logger
}

// NewLimiter constructs the limiter. A nil client disables it.
func NewLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) *Limiter {
	limiter := &Limiter{cfg: cfg, logger: logger}
	if client != nil {
		limiter.counter = redisCounter{client: client}
	}
	return limiter
}

// NewLimiterWithCounter builds the limiter on an arbitrary counter backend.
func NewLimiterWithCounter(counter Counter, cfg config.RateLimitConfig, logger *zap.Logger) *Limiter {
	return &Limiter{counter: counter, cfg: cfg, logger: logger}
}

// Handle enforces the window. Must run after optional session extraction so
// the role tier is known.
func (l *Limiter) Handle(c *fiber.Ctx) error {
	if l == nil || l.counter == nil || !l.cfg.Enabled {
		return c.Next()
	}

	role, subject := l.classify(c)
	limit := l.limitFor(role)

	key := "ratelimit:" + role + ":" + subject
	count, err := l.counter.Incr(c.UserContext(), key)
	if err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
		return c.Next()
	}
	if count == 1 {
		if err := l.counter.Expire(c.UserContext(), key, l.cfg.Window()); err != nil {
			l.logger.Warn("rate limiter expire failed", zap.Error(err))
		}
	}

	if count > int64(limit) {
		l.logger.Warn("rate limit exceeded",
			zap.String("role", role),
			zap.String("subject", subject),
			zap.Int64("count", count),
		)
		return apperrors.NewRateLimited(roleMessage(role))
	}
	return c.Next()
}

func (l *Limiter) classify(c *fiber.Ctx) (role, subject string) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok || identity == nil {
		return "guest", c.IP()
	}
	return string(identity.Role), strconv.FormatInt(identity.ID, 10)
}

func (l *Limiter) limitFor(role string) int {
	switch domain.Role(role) {
	case domain.RoleAdmin:
		return l.cfg.AdminPerWindow
	case domain.RoleUser:
		return l.cfg.UserPerWindow
	default:
		return l.cfg.GuestPerWindow
	}
}

func roleMessage(role string) string {
	switch domain.Role(role) {
	case domain.RoleAdmin:
		return "admin rate limit exceeded"
	case domain.RoleUser:
		return "user rate limit exceeded"
	default:
		return "guest rate limit exceeded"
	}
}
