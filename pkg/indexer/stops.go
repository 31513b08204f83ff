package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/database"
	"github.com/Young-000/alert-system-sub000/pkg/elastic_client"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

const stopsIndexPrefix = "commute-stops"

const stopIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1
	},
	"mappings": {
		"properties": {
			"PrimaryIdentifier": {
				"type": "keyword"
			},
			"PrimaryName": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword",
						"ignore_above": 256
					},
					"search_as_you_type": {
						"type": "search_as_you_type"
					}
				}
			},
			"TransportMode": {
				"type": "keyword"
			},
			"Line": {
				"type": "keyword"
			},
			"StopNumber": {
				"type": "keyword"
			},
			"Location": {
				"properties": {
					"type": {
						"type": "keyword"
					},
					"coordinates": {
						"type": "float"
					}
				}
			},
			"Active": {
				"type": "boolean"
			}
		}
	}
}`

// IndexStops builds a fresh timestamped index of every active stop and then drops the
// older indexes, searches read through the commute-stops-* wildcard so they see the new
// index as soon as it exists
func IndexStops(ctx context.Context) error {
	indexName := fmt.Sprintf("%s-%d", stopsIndexPrefix, time.Now().Unix())

	if err := createStopIndex(ctx, indexName); err != nil {
		return err
	}
	if err := indexStopsFromMongo(ctx, indexName); err != nil {
		return err
	}

	stats, err := elastic_client.WaitUntilQueueEmpty(ctx)
	if err != nil {
		return err
	}
	if stats.NumFailed > 0 {
		return fmt.Errorf("%d stops failed to index into %s, keeping the older indexes", stats.NumFailed, indexName)
	}

	return deleteOldIndexes(ctx, stopsIndexPrefix+"-*", indexName)
}

func createStopIndex(ctx context.Context, indexName string) error {
	indexReq := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(stopIndexMapping),
	}

	resp, err := indexReq.Do(ctx, elastic_client.Client)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", indexName, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		responseBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to create index %s: %s", indexName, responseBytes)
	}

	log.Info().Str("index", indexName).Msg("Created index")

	return nil
}

func stopDocument(stop *ctdf.Stop) ([]byte, error) {
	return json.Marshal(stop)
}

func indexStopsFromMongo(ctx context.Context, indexName string) error {
	stopsCollection := database.GetCollection("stops")

	cursor, err := stopsCollection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var stop *ctdf.Stop
		if err := cursor.Decode(&stop); err != nil {
			log.Error().Err(err).Msg("Failed to decode Stop")
			continue
		}

		document, err := stopDocument(stop)
		if err != nil {
			return err
		}

		if err := elastic_client.IndexRequest(ctx, indexName, stop.PrimaryIdentifier, bytes.NewReader(document)); err != nil {
			return err
		}
		count++
	}

	log.Info().Int("stops", count).Msg("Sent all index requests to queue")

	return cursor.Err()
}
