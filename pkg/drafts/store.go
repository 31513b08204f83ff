package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const DefaultSessionExpiration = 2 * time.Hour

var ErrSessionNotFound = errors.New("Could not find draft matching identifier")

// Store keeps sessions in Redis between requests, idle sessions expire
type Store struct {
	Cache *cache.Cache[string]
}

func NewStore(redisClient *redis.Client, expiration time.Duration) *Store {
	redisStore := redisstore.NewRedis(redisClient, store.WithExpiration(expiration))

	return &Store{
		Cache: cache.New[string](redisStore),
	}
}

func sessionCacheKey(id string) string {
	return fmt.Sprintf("draft/%s", id)
}

// isNotFound matches the redis store miss however gocache wraps it
func isNotFound(err error) bool {
	var notFound *store.NotFound
	return errors.As(err, &notFound) || errors.Is(err, redis.Nil)
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	value, err := s.Cache.Get(ctx, sessionCacheKey(id))
	if isNotFound(err) {
		return nil, ErrSessionNotFound
	} else if err != nil {
		return nil, err
	}

	var session *Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Store) Put(ctx context.Context, session *Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.Cache.Set(ctx, sessionCacheKey(session.ID), string(sessionJSON))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.Cache.Delete(ctx, sessionCacheKey(id))
}
