package events

import (
	"fmt"

	"github.com/Young-000/alert-system-sub000/pkg/database"
	"github.com/Young-000/alert-system-sub000/pkg/redis_client"
	"github.com/gofiber/fiber/v2"
)

// NewStatsApp serves the queue dashboard, handled event counts and a health check
func NewStatsApp(recorder *ActivityRecorder) *fiber.App {
	app := fiber.New()

	app.Get(fmt.Sprintf("/%s/stats", QueueName), func(c *fiber.Ctx) error {
		queues, err := redis_client.QueueConnection.GetOpenQueues()
		if err != nil {
			return err
		}

		stats, err := redis_client.QueueConnection.CollectStats(queues)
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(stats.GetHtml(c.Query("layout"), c.Query("refresh")))
	})

	app.Get("/counts", func(c *fiber.Ctx) error {
		counts, err := recorder.Counts(c.UserContext())
		if err != nil {
			return err
		}

		return c.JSON(counts)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := redis_client.Client.Ping(c.UserContext()).Err(); err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.SendString(err.Error())
		}

		if err := database.MongoGlobalInstance.Client.Ping(c.UserContext(), nil); err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.SendString(err.Error())
		}

		return c.SendString("OK")
	})

	return app
}
