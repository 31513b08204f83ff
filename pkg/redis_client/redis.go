package redis_client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Young-000/alert-system-sub000/pkg/util"
	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"

const queueConnectionTag = "commute"

func clientOptions(env map[string]string) (*redis.Options, error) {
	options := &redis.Options{
		Addr:     defaultConnectionAddress,
		Password: env["COMMUTE_REDIS_PASSWORD"],
	}

	if env["COMMUTE_REDIS_ADDRESS"] != "" {
		options.Addr = env["COMMUTE_REDIS_ADDRESS"]
	}

	if env["COMMUTE_REDIS_DATABASE"] != "" {
		database, err := strconv.Atoi(env["COMMUTE_REDIS_DATABASE"])
		if err != nil {
			return nil, fmt.Errorf("COMMUTE_REDIS_DATABASE must be a number: %w", err)
		}
		options.DB = database
	}

	return options, nil
}

// Connect opens the global Redis client used for caches and drafts, and the rmq
// connection for the events queue on top of it
func Connect() error {
	options, err := clientOptions(util.GetEnvironmentVariables())
	if err != nil {
		return err
	}

	Client = redis.NewClient(options)

	if err := Client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	queueErrors := make(chan error, 10)
	go logQueueErrors(queueErrors)

	QueueConnection, err = rmq.OpenConnectionWithRedisClient(queueConnectionTag, Client, queueErrors)
	return err
}

func logQueueErrors(queueErrors <-chan error) {
	for err := range queueErrors {
		log.Error().Err(err).Msg("Queue error")
	}
}
