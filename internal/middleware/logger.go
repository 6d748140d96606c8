package middleware

import (
	"time"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request with its outcome.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		entry := log.WithFields(log.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   status,
			"duration": time.Since(start).String(),
		})
		if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
			entry = entry.WithField("request", id)
		}
		switch {
		case err != nil:
			entry.WithError(err).Warn("request failed")
		case status >= fiber.StatusInternalServerError:
			entry.Error("request")
		default:
			entry.Info("request")
		}
		return err
	}
}
