package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UnmatchedRoute is the metrics key for requests no route handled.
const UnmatchedRoute = "unmatched"

const routeKeyLocal = "metrics_route"

// MarkUnmatched files the request under UnmatchedRoute instead of its raw path.
func MarkUnmatched(c *fiber.Ctx) {
	c.Locals(routeKeyLocal, UnmatchedRoute)
}

// RouteKey is the bounded key metrics are recorded under: the route template, never the raw path.
func RouteKey(c *fiber.Ctx) string {
	if key, ok := c.Locals(routeKeyLocal).(string); ok {
		return key
	}
	return c.Route().Path
}

// RequestLogger logs one line per request and feeds the request counters.
// It must wrap the error middleware so the final status is visible.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)

		status := c.Response().StatusCode()
		route := RouteKey(c)
		metrics.RecordRequest(route, c.Method(), status, dur)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", dur),
			zap.String("remote_ip", c.IP()),
		}
		if rid := c.Get(fiber.HeaderXRequestID); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}

		switch {
		case err != nil || status >= 500:
			logger.Error("request completed", append(fields, zap.Error(err))...)
		case status >= 400:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}
		return err
	}
}
