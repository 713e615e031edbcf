package serverutils

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"medassist-be/internal/pkg/logger"
	"medassist-be/pkg/ratelimit"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimitMiddleware limits authenticated users per route. A limiter error lets the request through.
func RateLimitMiddleware(limiter RateLimiter, limit int, window time.Duration, log logger.ILogger) fiber.Handler {
	if limiter == nil || limit <= 0 {
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}

	return func(ctx *fiber.Ctx) error {
		subject, _ := ctx.Locals(LocalUserID).(string)
		if subject == "" {
			subject = ctx.IP()
		}
		key := ratelimit.UserKey(subject, ctx.Path())

		allowed, err := limiter.Allow(ctx.UserContext(), key, limit, window)
		if err != nil {
			if log != nil {
				log.Warn("RATELIMIT", "limiter unavailable, allowing request", map[string]interface{}{
					"error": err.Error(),
					"key":   key,
				})
			}
			return ctx.Next()
		}
		if !allowed {
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(fiber.StatusTooManyRequests, "rate limit exceeded, try again later"))
		}
		return ctx.Next()
	}
}
