package commuteroutes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/adjust/rmq/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrRouteNotFound = errors.New("Could not find Commute Route matching identifier")

// Store persists saved commute routes
type Store interface {
	Save(ctx context.Context, route *ctdf.CommuteRoute) error
	Get(ctx context.Context, identifier string) (*ctdf.CommuteRoute, error)
	ListForUser(ctx context.Context, userID string) ([]*ctdf.CommuteRoute, error)
	Delete(ctx context.Context, identifier string) error
}

func NewIdentifier() string {
	return fmt.Sprintf(ctdf.CommuteRouteIDFormat, uuid.NewString())
}

type MongoStore struct {
	Collection *mongo.Collection
	EventQueue rmq.Queue
}

func (s *MongoStore) Save(ctx context.Context, route *ctdf.CommuteRoute) error {
	now := time.Now()
	if route.PrimaryIdentifier == "" {
		route.PrimaryIdentifier = NewIdentifier()
	}
	if route.CreationDateTime.IsZero() {
		route.CreationDateTime = now
	}
	route.ModificationDateTime = now

	filter := bson.M{"primaryidentifier": route.PrimaryIdentifier}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.Collection.ReplaceOne(ctx, filter, route, opts); err != nil {
		return err
	}

	s.publish(ctdf.EventTypeCommuteRouteSaved, route)

	return nil
}

func (s *MongoStore) Get(ctx context.Context, identifier string) (*ctdf.CommuteRoute, error) {
	var route *ctdf.CommuteRoute
	err := s.Collection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&route)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRouteNotFound
	} else if err != nil {
		return nil, err
	}

	return route, nil
}

func (s *MongoStore) ListForUser(ctx context.Context, userID string) ([]*ctdf.CommuteRoute, error) {
	opts := options.Find().SetSort(bson.D{{Key: "modificationdatetime", Value: -1}})

	cursor, err := s.Collection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	routes := []*ctdf.CommuteRoute{}
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, err
	}

	return routes, nil
}

func (s *MongoStore) Delete(ctx context.Context, identifier string) error {
	result, err := s.Collection.DeleteOne(ctx, bson.M{"primaryidentifier": identifier})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrRouteNotFound
	}

	s.publish(ctdf.EventTypeCommuteRouteDeleted, map[string]string{"PrimaryIdentifier": identifier})

	return nil
}

func (s *MongoStore) publish(eventType ctdf.EventType, body interface{}) {
	if s.EventQueue == nil {
		return
	}

	eventBytes, _ := json.Marshal(ctdf.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Body:      body,
	})

	if err := s.EventQueue.PublishBytes(eventBytes); err != nil {
		log.Error().Err(err).Str("type", string(eventType)).Msg("Failed to publish event")
	}
}
