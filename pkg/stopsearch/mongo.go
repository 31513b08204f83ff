package stopsearch

import (
	"context"
	"regexp"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSearcher matches stop names by prefix straight from the stops collection.
// Results come back in name order as MongoDB has no relevance ranking for regex matches.
type MongoSearcher struct {
	Collection *mongo.Collection
	Limit      int
}

func buildStopPrefixQuery(query string, mode ctdf.TransportMode) bson.M {
	filter := bson.M{
		"active":      true,
		"primaryname": bson.M{"$regex": "^" + regexp.QuoteMeta(query), "$options": "i"},
	}

	if mode != "" {
		filter["transportmode"] = mode
	}

	return filter
}

func (s *MongoSearcher) Search(ctx context.Context, query string, mode ctdf.TransportMode) ([]*ctdf.Stop, error) {
	opts := options.Find().
		SetLimit(int64(resultLimit(s.Limit))).
		SetSort(bson.D{{Key: "primaryname", Value: 1}, {Key: "line", Value: 1}})

	cursor, err := s.Collection.Find(ctx, buildStopPrefixQuery(query, mode), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stops := []*ctdf.Stop{}
	for cursor.Next(ctx) {
		var stop *ctdf.Stop
		if err := cursor.Decode(&stop); err != nil {
			return nil, err
		}

		stops = append(stops, stop)
	}

	return stops, cursor.Err()
}
