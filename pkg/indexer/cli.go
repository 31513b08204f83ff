package indexer

import (
	"github.com/Young-000/alert-system-sub000/pkg/database"
	"github.com/Young-000/alert-system-sub000/pkg/elastic_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "indexer",
		Usage: "Indexes data into Elasticsearch",
		Subcommands: []*cli.Command{
			{
				Name:  "stops",
				Usage: "do an index of the Stops",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(true); err != nil {
						return err
					}

					if err := IndexStops(c.Context); err != nil {
						return err
					}

					log.Info().Msg("Stops index rebuilt")

					return nil
				},
			},
		},
	}
}
