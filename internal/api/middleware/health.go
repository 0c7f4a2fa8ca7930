package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type HealthChecker interface {
	HealthCheck() error
}

// HealthCheck answers /health, reporting the database as down when the
// checker fails.
func HealthCheck(serviceName string, checker HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() != "/health" {
			return c.Next()
		}

		status, code := "healthy", fiber.StatusOK
		if checker != nil {
			if err := checker.HealthCheck(); err != nil {
				status, code = "unhealthy", fiber.StatusServiceUnavailable
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"status":    status,
			"timestamp": time.Now().Unix(),
			"service":   serviceName,
		})
	}
}
