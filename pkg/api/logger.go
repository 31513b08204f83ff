package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

// NewLogger tags every request with an id, echoed back in X-Request-ID, and logs it once
// finished. Client errors log at warn, server errors at error and the rest at debug.
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()

		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDHeader, requestID)

		err := c.Next()

		ipAddress := c.IP()
		if cloudflareConnectingIP := c.Get("CF-Connecting-IP"); cloudflareConnectingIP != "" {
			ipAddress = cloudflareConnectingIP
		}

		code := c.Response().StatusCode()

		var event *zerolog.Event
		switch {
		case err != nil || code >= fiber.StatusInternalServerError:
			event = log.Error().Err(err)
		case code >= fiber.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Debug()
		}

		if userID, ok := c.Locals("account_userid").(string); ok {
			event = event.Str("user", userID)
		}

		event.
			Str("request", requestID).
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", ipAddress).
			Dur("latency", time.Since(startTime)).
			Msg("HTTP Request")

		return err
	}
}
