package stopsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CachedSearcher keeps search responses in Redis so repeated keystrokes for the same
// prefix do not reach the search backend
type CachedSearcher struct {
	Searcher Searcher
	Cache    *cache.Cache[string]
}

func NewCachedSearcher(searcher Searcher, redisClient *redis.Client, expiration time.Duration) *CachedSearcher {
	redisStore := redisstore.NewRedis(redisClient, store.WithExpiration(expiration))

	return &CachedSearcher{
		Searcher: searcher,
		Cache:    cache.New[string](redisStore),
	}
}

func searchCacheKey(query string, mode ctdf.TransportMode) string {
	if mode == "" {
		mode = "all"
	}

	return fmt.Sprintf("stopsearch/%s/%s", mode, strings.ToLower(query))
}

func (c *CachedSearcher) Search(ctx context.Context, query string, mode ctdf.TransportMode) ([]*ctdf.Stop, error) {
	cacheKey := searchCacheKey(query, mode)

	cachedValue, err := c.Cache.Get(ctx, cacheKey)
	if err == nil {
		var stops []*ctdf.Stop
		if err := json.Unmarshal([]byte(cachedValue), &stops); err == nil {
			return stops, nil
		}
	}

	stops, err := c.Searcher.Search(ctx, query, mode)
	if err != nil {
		return nil, err
	}

	stopsJSON, _ := json.Marshal(stops)
	if err := c.Cache.Set(ctx, cacheKey, string(stopsJSON)); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache stop search")
	}

	return stops, nil
}
