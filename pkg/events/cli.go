package events

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/database"
	"github.com/Young-000/alert-system-sub000/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Provides the events runner",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run events server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "listen target for the stats server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					recorder := &ActivityRecorder{Client: redis_client.Client}

					redisConsumer := RedisConsumer{
						Connection:      redis_client.QueueConnection,
						QueueName:       QueueName,
						NumberConsumers: 5,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewEventsBatchConsumer(recorder),
					}
					if err := redisConsumer.Start(); err != nil {
						return err
					}

					statsApp := NewStatsApp(recorder)
					go func() {
						if err := statsApp.Listen(c.String("stats-listen")); err != nil {
							log.Error().Err(err).Msg("Stats server stopped")
						}
					}()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return statsApp.Shutdown()
				},
			},
			{
				Name:  "test-event",
				Usage: "generate a test event",
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					eventsQueue, err := redis_client.QueueConnection.OpenQueue(QueueName)
					if err != nil {
						return err
					}

					eventBytes, err := json.Marshal(ctdf.Event{
						Type:      ctdf.EventTypeCommuteRouteSaved,
						Timestamp: time.Now(),
						Body: ctdf.CommuteRoute{
							PrimaryIdentifier: "COMMUTE:ROUTE:TEST",
							UserID:            "test-user",
							Name:              "Test route",
							Direction:         ctdf.RouteDirectionToWork,
						},
					})
					if err != nil {
						return err
					}

					return eventsQueue.PublishBytes(eventBytes)
				},
			},
		},
	}
}
