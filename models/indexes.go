package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIssueIndexes creates the indexes the dashboard queries rely on
func EnsureIssueIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dateReported", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "severity", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexModels, options.CreateIndexes())
	return err
}
