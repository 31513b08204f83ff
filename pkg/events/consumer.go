package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
)

const QueueName = "events-queue"

// Handler reacts to a single decoded event
type Handler interface {
	HandleEvent(ctx context.Context, event *ctdf.Event) error
}

type RedisConsumer struct {
	Connection rmq.Connection
	QueueName  string

	NumberConsumers int
	BatchSize       int

	Timeout time.Duration

	Consumer rmq.BatchConsumer
}

func (c *RedisConsumer) Start() error {
	log.Info().Str("queue", c.QueueName).Msg("Starting consumers")

	queue, err := c.Connection.OpenQueue(c.QueueName)
	if err != nil {
		return err
	}
	if err := queue.StartConsuming(int64(c.NumberConsumers*c.BatchSize), time.Second); err != nil {
		return err
	}

	for i := 0; i < c.NumberConsumers; i++ {
		log.Info().Msgf("Starting %s consumer %d", c.QueueName, i)

		if _, err := queue.AddBatchConsumer(fmt.Sprintf("%s-%d", c.QueueName, i), int64(c.BatchSize), c.Timeout, c.Consumer); err != nil {
			return err
		}
	}

	return nil
}

type BatchConsumer struct {
	Handler Handler
}

func NewEventsBatchConsumer(handler Handler) *BatchConsumer {
	return &BatchConsumer{Handler: handler}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	ctx := context.Background()

	for _, delivery := range batch {
		var event ctdf.Event
		if err := json.Unmarshal([]byte(delivery.Payload()), &event); err != nil {
			log.Error().Err(err).Msg("Failed to decode event, rejecting")

			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject event")
			}
			continue
		}

		if err := consumer.Handler.HandleEvent(ctx, &event); err != nil {
			log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to handle event")
		}

		if err := delivery.Ack(); err != nil {
			log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to ack event")
		}
	}
}
