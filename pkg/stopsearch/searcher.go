package stopsearch

import (
	"context"
	"strings"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/routebuilder"
)

const DefaultResultLimit = 20

// Searcher returns stops matching the query text ranked best match first
type Searcher interface {
	Search(ctx context.Context, query string, mode ctdf.TransportMode) ([]*ctdf.Stop, error)
}

// Candidates runs a search and groups the matches into pickable candidates
func Candidates(ctx context.Context, searcher Searcher, query string, mode ctdf.TransportMode) ([]routebuilder.StopCandidate, error) {
	query = NormaliseQuery(query)
	if query == "" {
		return []routebuilder.StopCandidate{}, nil
	}

	matches, err := searcher.Search(ctx, query, mode)
	if err != nil {
		return nil, err
	}

	return routebuilder.ResolveCandidates(matches), nil
}

func NormaliseQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func resultLimit(limit int) int {
	if limit <= 0 {
		return DefaultResultLimit
	}

	return limit
}
