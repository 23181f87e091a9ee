package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB, verifies the connection and ensures the
// createdAt indexes used for listing exist.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	mdb := client.Database(database)
	for _, coll := range []string{"surveyResults", "reports"} {
		_, err := mdb.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		})
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, fmt.Errorf("index %s: %w", coll, err)
		}
	}
	return client, mdb, nil
}
