package serverutils

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"medassist-be/pkg/metrics"
)

// MetricsMiddleware records request count and latency per matched route.
func MetricsMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		path := ctx.Route().Path
		if path == "" {
			path = "unknown"
		}
		method := ctx.Method()
		status := strconv.Itoa(ctx.Response().StatusCode())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}
