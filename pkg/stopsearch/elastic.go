package stopsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultStopsIndex = "commute-stops-*"

type ElasticSearcher struct {
	Client *elasticsearch.Client
	Index  string
	Limit  int
}

type stopSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source *ctdf.Stop `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildStopSearchQuery(query string, mode ctdf.TransportMode) map[string]interface{} {
	filters := []map[string]interface{}{
		{
			"term": map[string]interface{}{
				"Active": true,
			},
		},
	}

	if mode != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{
				"TransportMode": mode,
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query": query,
							"type":  "bool_prefix",
							"fields": []string{
								"PrimaryName.search_as_you_type",
								"PrimaryName.search_as_you_type._2gram",
								"PrimaryName.search_as_you_type._3gram",
							},
						},
					},
				},
				"filter": filters,
			},
		},
	}
}

func (s *ElasticSearcher) Search(ctx context.Context, query string, mode ctdf.TransportMode) ([]*ctdf.Stop, error) {
	index := s.Index
	if index == "" {
		index = DefaultStopsIndex
	}

	var queryBytes bytes.Buffer
	if err := json.NewEncoder(&queryBytes).Encode(buildStopSearchQuery(query, mode)); err != nil {
		return nil, err
	}

	res, err := s.Client.Search(
		s.Client.Search.WithContext(ctx),
		s.Client.Search.WithIndex(index),
		s.Client.Search.WithBody(&queryBytes),
		s.Client.Search.WithSize(resultLimit(s.Limit)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("[%s] stop search failed", res.Status())
	}

	var response stopSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, err
	}

	stops := []*ctdf.Stop{}
	for _, hit := range response.Hits.Hits {
		if hit.Source != nil {
			stops = append(stops, hit.Source)
		}
	}

	return stops, nil
}
