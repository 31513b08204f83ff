package api

import (
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/commuteroutes"
	"github.com/Young-000/alert-system-sub000/pkg/database"
	"github.com/Young-000/alert-system-sub000/pkg/drafts"
	"github.com/Young-000/alert-system-sub000/pkg/elastic_client"
	"github.com/Young-000/alert-system-sub000/pkg/redis_client"
	"github.com/Young-000/alert-system-sub000/pkg/stopsearch"
	"github.com/Young-000/alert-system-sub000/pkg/util"
	"github.com/urfave/cli/v2"
)

const defaultSearchCacheExpiration = 10 * time.Minute

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the commute route web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					eventQueue, err := redis_client.QueueConnection.OpenQueue("events-queue")
					if err != nil {
						return err
					}

					accountAuth, err := EnsureValidToken()
					if err != nil {
						return err
					}

					routeStore := &commuteroutes.MongoStore{
						Collection: database.GetCollection("commute_routes"),
						EventQueue: eventQueue,
					}

					return SetupServer(c.String("listen"), Dependencies{
						Searcher: NewStopSearcher(),
						Routes:   routeStore,
						Drafts: &drafts.Manager{
							Sessions: drafts.NewStore(
								redis_client.Client,
								util.GetEnvironmentDuration("COMMUTE_DRAFT_TTL", drafts.DefaultSessionExpiration),
							),
							Routes: routeStore,
						},
					}, accountAuth)
				},
			},
		},
	}
}

// NewStopSearcher wraps the configured search backend with a Redis response cache
func NewStopSearcher() stopsearch.Searcher {
	return stopsearch.NewCachedSearcher(
		stopsearch.NewBackend(),
		redis_client.Client,
		util.GetEnvironmentDuration("COMMUTE_SEARCH_CACHE_TTL", defaultSearchCacheExpiration),
	)
}
