package elastic_client

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/util"
	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
)

var Client *elasticsearch.Client
var bulkIndexer esutil.BulkIndexer

var ErrNotConfigured = errors.New("COMMUTE_ELASTICSEARCH_ADDRESS is not set")

const bulkFlushInterval = 15 * time.Second

// clientConfig builds the client settings from the environment, ok is false when no
// address is configured
func clientConfig(env map[string]string) (config elasticsearch.Config, ok bool) {
	address := env["COMMUTE_ELASTICSEARCH_ADDRESS"]
	if address == "" {
		return config, false
	}

	retryBackoff := backoff.NewExponentialBackOff()

	return elasticsearch.Config{
		Addresses: []string{address},
		Username:  env["COMMUTE_ELASTICSEARCH_USERNAME"],
		Password:  env["COMMUTE_ELASTICSEARCH_PASSWORD"],

		RetryOnStatus: []int{502, 503, 504, 429},
		RetryBackoff: func(attempt int) time.Duration {
			if attempt == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	}, true
}

// Connect sets up the global client. When Elasticsearch is not configured and not
// required the client is left nil and stop search falls back to MongoDB.
func Connect(required bool) error {
	config, ok := clientConfig(util.GetEnvironmentVariables())
	if !ok {
		if required {
			return ErrNotConfigured
		}

		log.Info().Msg("Skipping Elasticsearch setup")
		return nil
	}

	client, err := elasticsearch.NewClient(config)
	if err != nil {
		return err
	}

	info, err := client.Info()
	if err != nil {
		return err
	}
	info.Body.Close()

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        client,
		FlushInterval: bulkFlushInterval,
	})
	if err != nil {
		return err
	}

	Client = client
	bulkIndexer = indexer

	log.Info().Strs("addresses", config.Addresses).Msg("Elasticsearch client setup")

	return nil
}

// IndexRequest queues a document for the bulk indexer. Documents with an id replace any
// earlier copy in the same index.
func IndexRequest(ctx context.Context, indexName string, documentID string, document io.ReadSeeker) error {
	if bulkIndexer == nil {
		return ErrNotConfigured
	}

	return bulkIndexer.Add(ctx, esutil.BulkIndexerItem{
		Index:      indexName,
		Action:     "index",
		DocumentID: documentID,
		Body:       document,
		OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
			if err != nil {
				log.Error().Err(err).Str("index", indexName).Str("document", item.DocumentID).Msg("Failed to index document")
			} else {
				log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Str("document", item.DocumentID).Msg("Failed to index document")
			}
		},
	})
}

// WaitUntilQueueEmpty flushes and closes the bulk indexer, no more documents can be
// queued afterwards
func WaitUntilQueueEmpty(ctx context.Context) (esutil.BulkIndexerStats, error) {
	if bulkIndexer == nil {
		return esutil.BulkIndexerStats{}, nil
	}

	if err := bulkIndexer.Close(ctx); err != nil {
		return esutil.BulkIndexerStats{}, err
	}

	stats := bulkIndexer.Stats()
	log.Info().Uint64("indexed", stats.NumIndexed).Uint64("failed", stats.NumFailed).Msg("Bulk indexer finished")

	return stats, nil
}
