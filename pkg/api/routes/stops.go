package routes

import (
	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/stopsearch"
	"github.com/gofiber/fiber/v2"
)

func StopsRouter(router fiber.Router, searcher stopsearch.Searcher) {
	router.Get("/search", func(c *fiber.Ctx) error {
		return searchStops(c, searcher)
	})
}

func searchStops(c *fiber.Ctx, searcher stopsearch.Searcher) error {
	mode := ctdf.TransportMode(c.Query("mode"))
	if mode != "" && !mode.Valid() {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Mode must be subway or bus",
		})
	}

	query := stopsearch.NormaliseQuery(c.Query("query"))
	if query == "" {
		return c.JSON(fiber.Map{
			"Query":      query,
			"Candidates": []interface{}{},
		})
	}

	candidates, err := stopsearch.Candidates(c.UserContext(), searcher, query, mode)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"Query":      query,
		"Candidates": candidates,
	})
}
