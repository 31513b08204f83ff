package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const activityCountsKey = "events/counts"

// ActivityRecorder keeps running counts of commute route events per type and the last
// route each user changed
type ActivityRecorder struct {
	Client *redis.Client
}

func lastRouteKey(userID string) string {
	return fmt.Sprintf("events/last-route/%s", userID)
}

type routeEventBody struct {
	PrimaryIdentifier string
	UserID            string
	Name              string
}

func decodeRouteEventBody(event *ctdf.Event) (routeEventBody, error) {
	var body routeEventBody

	encoded, err := json.Marshal(event.Body)
	if err != nil {
		return body, err
	}

	err = json.Unmarshal(encoded, &body)
	return body, err
}

func (a *ActivityRecorder) HandleEvent(ctx context.Context, event *ctdf.Event) error {
	switch event.Type {
	case ctdf.EventTypeCommuteRouteSaved, ctdf.EventTypeCommuteRouteDeleted:
	default:
		log.Warn().Str("type", string(event.Type)).Msg("Ignoring unknown event type")
		return nil
	}

	body, err := decodeRouteEventBody(event)
	if err != nil {
		return err
	}

	log.Info().
		Str("type", string(event.Type)).
		Str("route", body.PrimaryIdentifier).
		Time("timestamp", event.Timestamp).
		Msg("Commute route event")

	pipe := a.Client.TxPipeline()
	pipe.HIncrBy(ctx, activityCountsKey, string(event.Type), 1)
	if event.Type == ctdf.EventTypeCommuteRouteSaved && body.UserID != "" {
		pipe.Set(ctx, lastRouteKey(body.UserID), body.PrimaryIdentifier, 0)
	}
	_, err = pipe.Exec(ctx)

	return err
}

// Counts returns how many events of each type have been handled
func (a *ActivityRecorder) Counts(ctx context.Context) (map[string]string, error) {
	return a.Client.HGetAll(ctx, activityCountsKey).Result()
}
