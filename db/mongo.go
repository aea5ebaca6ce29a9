package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection is the collection holding user documents
const UsersCollection = "users"

// ConnectToMongo connects to MongoDB and verifies the connection
func ConnectToMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// EnsureUserIndexes creates the unique username index if it doesn't exist
func EnsureUserIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	}

	_, err := client.Database(dbName).Collection(UsersCollection).Indexes().CreateOne(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}
	return nil
}
