package routes

import (
	"errors"

	"github.com/Young-000/alert-system-sub000/pkg/commuteroutes"
	"github.com/Young-000/alert-system-sub000/pkg/drafts"
	"github.com/Young-000/alert-system-sub000/pkg/routebuilder"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var badRequestErrors = []error{
	routebuilder.ErrMinimumStops,
	routebuilder.ErrStopIndexOutOfRange,
	routebuilder.ErrUnknownStopKey,
	routebuilder.ErrLineOnBusStop,
	routebuilder.ErrStopNumberOnStation,
	routebuilder.ErrUnknownTransportMode,
	drafts.ErrInvalidDirection,
}

func sendError(c *fiber.Ctx, err error) error {
	var rejected *routebuilder.RejectedError
	if errors.As(err, &rejected) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error":      rejected.Message,
			"validation": rejected.Result,
		})
	}

	if errors.Is(err, drafts.ErrSessionNotFound) || errors.Is(err, commuteroutes.ErrRouteNotFound) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	for _, badRequest := range badRequestErrors {
		if errors.Is(err, badRequest) {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")

	c.SendStatus(fiber.StatusInternalServerError)
	return c.JSON(fiber.Map{
		"error": "Internal server error",
	})
}

func accountUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("account_userid").(string)
	return userID
}
