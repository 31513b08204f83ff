package database

import (
	"context"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/util"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "commute"

const connectTimeout = 30 * time.Second

func connectionSettings(env map[string]string) (connectionString string, databaseName string) {
	connectionString = defaultMongoConnectionString
	databaseName = defaultMongoDatabase

	if env["COMMUTE_MONGODB_CONNECTION"] != "" {
		connectionString = env["COMMUTE_MONGODB_CONNECTION"]
	}
	if env["COMMUTE_MONGODB_DATABASE"] != "" {
		databaseName = env["COMMUTE_MONGODB_DATABASE"]
	}

	return connectionString, databaseName
}

// Connect opens the global MongoDB connection and makes sure the collection indexes exist
func Connect() error {
	connectionString, databaseName := connectionSettings(util.GetEnvironmentVariables())

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString).SetAppName("commute"))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(databaseName),
	}

	log.Debug().Str("database", databaseName).Msg("Connected to MongoDB")

	createIndexes()

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
