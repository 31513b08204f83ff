package main

import (
	"os"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/api"
	"github.com/Young-000/alert-system-sub000/pkg/dataimporter"
	"github.com/Young-000/alert-system-sub000/pkg/events"
	"github.com/Young-000/alert-system-sub000/pkg/indexer"
	"github.com/Young-000/alert-system-sub000/pkg/stopsearch"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("COMMUTE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("COMMUTE_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "commute",
		Description: "Single binary for the commute route services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			indexer.RegisterCLI(),
			dataimporter.RegisterCLI(),
			events.RegisterCLI(),
			stopsearch.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
