package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AudienceAdmin  = "admin"
	AudienceSeller = "seller"
	AudiencePublic = "public"

	trackIDHeader = "X-Track-ID"
)

// Audience buckets a route template by who may call it.
func Audience(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/v1/admin"):
		return AudienceAdmin
	case strings.HasPrefix(path, "/api/v1"):
		return AudienceSeller
	default:
		return AudiencePublic
	}
}

// HTTPMetricsMiddleware records every request under its route template. A
// handler error is rendered through the app's ErrorHandler first so the
// recorded status is the one the client receives.
func HTTPMetricsMiddleware(metrics *Metrics, logger *zap.Logger, slowThreshold time.Duration) fiber.Handler {
	if slowThreshold <= 0 {
		slowThreshold = time.Second
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)

		method := c.Method()
		path := c.Route().Path
		if path == "" || path == "/" {
			path = c.Path()
		}
		audience := Audience(path)
		statusCode := strconv.Itoa(c.Response().StatusCode())
		responseSize := len(c.Response().Body())

		metrics.RecordHTTPRequest(audience, method, path, statusCode, duration, responseSize)

		if duration > slowThreshold {
			logger.Warn("Slow ledger request",
				zap.String("audience", audience),
				zap.String("method", method),
				zap.String("path", path),
				zap.String("status_code", statusCode),
				zap.String("trackID", string(c.Response().Header.Peek(trackIDHeader))),
				zap.Duration("duration", duration),
				zap.Duration("threshold", slowThreshold),
			)
		}

		return nil
	}
}
