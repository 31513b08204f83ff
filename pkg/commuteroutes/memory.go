package commuteroutes

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
)

// MemoryStore keeps routes in process, used for local runs without MongoDB and in tests
type MemoryStore struct {
	mutex  sync.RWMutex
	routes map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{routes: map[string][]byte{}}
}

func (s *MemoryStore) Save(_ context.Context, route *ctdf.CommuteRoute) error {
	now := time.Now()
	if route.PrimaryIdentifier == "" {
		route.PrimaryIdentifier = NewIdentifier()
	}
	if route.CreationDateTime.IsZero() {
		route.CreationDateTime = now
	}
	route.ModificationDateTime = now

	encoded, err := json.Marshal(route)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.routes[route.PrimaryIdentifier] = encoded

	return nil
}

func (s *MemoryStore) Get(_ context.Context, identifier string) (*ctdf.CommuteRoute, error) {
	s.mutex.RLock()
	encoded, exists := s.routes[identifier]
	s.mutex.RUnlock()

	if !exists {
		return nil, ErrRouteNotFound
	}

	var route *ctdf.CommuteRoute
	err := json.Unmarshal(encoded, &route)

	return route, err
}

func (s *MemoryStore) ListForUser(ctx context.Context, userID string) ([]*ctdf.CommuteRoute, error) {
	s.mutex.RLock()
	identifiers := make([]string, 0, len(s.routes))
	for identifier := range s.routes {
		identifiers = append(identifiers, identifier)
	}
	s.mutex.RUnlock()

	routes := []*ctdf.CommuteRoute{}
	for _, identifier := range identifiers {
		route, err := s.Get(ctx, identifier)
		if err != nil {
			return nil, err
		}

		if route.UserID == userID {
			routes = append(routes, route)
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].ModificationDateTime.After(routes[j].ModificationDateTime)
	})

	return routes, nil
}

func (s *MemoryStore) Delete(_ context.Context, identifier string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.routes[identifier]; !exists {
		return ErrRouteNotFound
	}
	delete(s.routes, identifier)

	return nil
}
