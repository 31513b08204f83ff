package routes

import (
	"github.com/Young-000/alert-system-sub000/pkg/commuteroutes"
	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

func CommuteRoutesRouter(router fiber.Router, store commuteroutes.Store) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listCommuteRoutes(c, store)
	})
	router.Get("/:identifier", func(c *fiber.Ctx) error {
		return getCommuteRoute(c, store)
	})
	router.Get("/:identifier/checkpoints.csv", func(c *fiber.Ctx) error {
		return getCommuteRouteCheckpoints(c, store)
	})
	router.Delete("/:identifier", func(c *fiber.Ctx) error {
		return deleteCommuteRoute(c, store)
	})
}

func listCommuteRoutes(c *fiber.Ctx, store commuteroutes.Store) error {
	routes, err := store.ListForUser(c.UserContext(), accountUserID(c))
	if err != nil {
		return sendError(c, err)
	}

	summaries := []ctdf.CommuteRouteSummary{}
	for _, route := range routes {
		summary, err := commuteroutes.Summarise(route)
		if err != nil {
			return sendError(c, err)
		}
		summaries = append(summaries, summary)
	}

	return c.JSON(summaries)
}

// ownedRoute hides routes belonging to other users behind the same not found error
func ownedRoute(c *fiber.Ctx, store commuteroutes.Store) (*ctdf.CommuteRoute, error) {
	route, err := store.Get(c.UserContext(), c.Params("identifier"))
	if err != nil {
		return nil, err
	}

	if route.UserID != accountUserID(c) {
		return nil, commuteroutes.ErrRouteNotFound
	}

	return route, nil
}

func getCommuteRoute(c *fiber.Ctx, store commuteroutes.Store) error {
	route, err := ownedRoute(c, store)
	if err != nil {
		return sendError(c, err)
	}

	return sendCommuteRoute(c, route, fiber.StatusOK)
}

func getCommuteRouteCheckpoints(c *fiber.Ctx, store commuteroutes.Store) error {
	route, err := ownedRoute(c, store)
	if err != nil {
		return sendError(c, err)
	}

	checkpointsCSV, err := commuteroutes.CheckpointsCSV(route)
	if err != nil {
		return sendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	return c.Send(checkpointsCSV)
}

func deleteCommuteRoute(c *fiber.Ctx, store commuteroutes.Store) error {
	route, err := ownedRoute(c, store)
	if err != nil {
		return sendError(c, err)
	}

	if err := store.Delete(c.UserContext(), route.PrimaryIdentifier); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func sendCommuteRoute(c *fiber.Ctx, route *ctdf.CommuteRoute, status int) error {
	routeReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, route)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce route",
		})
	}

	c.Status(status)
	return c.JSON(routeReduced)
}
