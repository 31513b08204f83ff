package stopsearch

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/database"
	"github.com/Young-000/alert-system-sub000/pkg/elastic_client"
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

// NewBackend searches Elasticsearch when it is connected and falls back to MongoDB,
// queries without a mode go to every mode.
// Requires database.Connect and elastic_client.Connect to have been called.
func NewBackend() Searcher {
	if elastic_client.Client != nil {
		return &AllModes{Searcher: &ElasticSearcher{Client: elastic_client.Client}}
	}

	return &AllModes{Searcher: &MongoSearcher{Collection: database.GetCollection("stops")}}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stops",
		Usage: "Stop search tools",
		Subcommands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "print the candidates a stop search resolves to",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Usage: "limit the search to subway or bus",
					},
					&cli.BoolFlag{
						Name:  "live",
						Usage: "read keystrokes from stdin, one line per update, and search as they arrive",
					},
					&cli.DurationFlag{
						Name:  "debounce",
						Value: DefaultDebounceDelay,
						Usage: "delay before a live search is issued",
					},
				},
				Action: func(c *cli.Context) error {
					mode := ctdf.TransportMode(c.String("mode"))
					if mode != "" && !mode.Valid() {
						return fmt.Errorf("unknown mode %q", mode)
					}

					if err := database.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}

					searcher := NewBackend()

					if c.Bool("live") {
						return runLiveSearch(searcher, mode, c)
					}

					query := strings.Join(c.Args().Slice(), " ")
					if NormaliseQuery(query) == "" {
						return errors.New("Query must be provided")
					}

					candidates, err := Candidates(c.Context, searcher, query, mode)
					if err != nil {
						return err
					}

					pretty.Println(candidates)

					return nil
				},
			},
		},
	}
}

func runLiveSearch(searcher Searcher, mode ctdf.TransportMode, c *cli.Context) error {
	live := NewLiveSearch(searcher, mode, c.Duration("debounce"), func(results LiveResults) {
		if results.Err != nil {
			fmt.Fprintf(c.App.ErrWriter, "search %q failed: %v\n", results.Query, results.Err)
			return
		}

		pretty.Fprintf(c.App.Writer, "%d %q %# v\n", results.Sequence, results.Query, results.Candidates)
	})
	defer live.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		live.Type(scanner.Text())
	}

	return scanner.Err()
}
