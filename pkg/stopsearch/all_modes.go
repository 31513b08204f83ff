package stopsearch

import (
	"context"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/sourcegraph/conc/pool"
)

// AllModes searches every transport mode at once when no mode is given.
// Results are concatenated in ctdf.TransportModes order, each keeping its own ranking.
type AllModes struct {
	Searcher Searcher
}

func (a *AllModes) Search(ctx context.Context, query string, mode ctdf.TransportMode) ([]*ctdf.Stop, error) {
	if mode != "" {
		return a.Searcher.Search(ctx, query, mode)
	}

	modes := ctdf.TransportModes()
	results := make([][]*ctdf.Stop, len(modes))

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, transportMode := range modes {
		i, transportMode := i, transportMode
		p.Go(func(ctx context.Context) error {
			stops, err := a.Searcher.Search(ctx, query, transportMode)
			results[i] = stops
			return err
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	stops := []*ctdf.Stop{}
	for _, modeStops := range results {
		stops = append(stops, modeStops...)
	}

	return stops, nil
}
