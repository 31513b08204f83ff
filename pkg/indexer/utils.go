package indexer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Young-000/alert-system-sub000/pkg/elastic_client"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
)

type catIndex struct {
	Index string `json:"index"`
}

func staleIndexes(indexes []catIndex, keep string) []string {
	stale := []string{}
	for _, index := range indexes {
		if index.Index != keep {
			stale = append(stale, index.Index)
		}
	}

	return stale
}

func deleteOldIndexes(ctx context.Context, indexWildcard string, indexName string) error {
	catReq := esapi.CatIndicesRequest{
		Index:  []string{indexWildcard},
		Format: "json",
	}

	resp, err := catReq.Do(ctx, elastic_client.Client)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}
	defer resp.Body.Close()

	var indexes []catIndex
	if err := json.NewDecoder(resp.Body).Decode(&indexes); err != nil {
		return err
	}

	for _, index := range staleIndexes(indexes, indexName) {
		deleteReq := esapi.IndicesDeleteRequest{
			Index: []string{index},
		}

		deleteResp, err := deleteReq.Do(ctx, elastic_client.Client)
		if err != nil {
			log.Error().Err(err).Str("index", index).Msg("Failed to delete old index")
			continue
		}
		deleteResp.Body.Close()

		log.Info().Str("index", index).Msg("Delete old index")
	}

	return nil
}
