package http

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"time"

	"resume-builder/internal/adapter/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// ExportLimiter is the shared token bucket behind the export route.
type ExportLimiter interface {
	CheckExportRateLimit(ctx context.Context, ownerID string, ratePerMinute, burst int) (*cache.RateLimitResult, error)
}

type RateLimitConfig struct {
	// Limiter is optional; without it a per-process fixed window is used.
	Limiter   ExportLimiter
	PerMinute int
	Burst     int
	Logger    *slog.Logger
}

// ExportRateLimit limits exports per owner, falling back to the client IP
// for unauthenticated requests.
func ExportRateLimit(cfg RateLimitConfig) fiber.Handler {
	if cfg.Limiter == nil {
		return limiter.New(limiter.Config{
			Max:          cfg.PerMinute,
			Expiration:   time.Minute,
			KeyGenerator: rateLimitKey,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "export rate limit exceeded")
			},
		})
	}

	return func(c *fiber.Ctx) error {
		res, err := cfg.Limiter.CheckExportRateLimit(c.UserContext(), rateLimitKey(c), cfg.PerMinute, cfg.Burst)
		if err != nil {
			cfg.Logger.Warn("rate limit check failed, allowing request", "error", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		if !res.Allowed {
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
			return fiber.NewError(fiber.StatusTooManyRequests, "export rate limit exceeded")
		}
		return c.Next()
	}
}

func rateLimitKey(c *fiber.Ctx) string {
	if id := OwnerID(c); id != "" {
		return id
	}
	return c.IP()
}
