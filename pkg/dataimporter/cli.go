package dataimporter

import (
	"errors"

	"github.com/Young-000/alert-system-sub000/pkg/database"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Import stop definitions into the database",
		Subcommands: []*cli.Command{
			{
				Name:      "stops",
				Usage:     "Import every YAML and CSV stops file in a directory",
				ArgsUsage: "<directory>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return errors.New("Directory must be provided")
					}

					if err := database.Connect(); err != nil {
						return err
					}

					stops, err := LoadStopsDirectory(c.Args().First())
					if err != nil {
						return err
					}

					log.Info().Int("stops", len(stops)).Msg("Loaded stop definitions")

					return ImportStops(c.Context, database.GetCollection("stops"), stops)
				},
			},
		},
	}
}
