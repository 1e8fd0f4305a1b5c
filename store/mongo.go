package store

import (
	"context"
	"time"

	"civiclens/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTimeout = 10 * time.Second

// MongoStore keeps one document per issue.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore wraps the collection and makes sure its indexes exist.
func NewMongoStore(collection *mongo.Collection) (*MongoStore, error) {
	if err := models.EnsureIssueIndexes(collection); err != nil {
		return nil, errors.Wrap(err, "creating issue indexes")
	}
	return &MongoStore{collection: collection}, nil
}

func (s *MongoStore) Save(ctx context.Context, issue models.Issue) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	if issue.Images == nil {
		issue.Images = []string{}
	}
	if _, err := s.collection.InsertOne(ctx, issue); err != nil {
		return errors.Wrap(err, "inserting issue")
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	// ObjectID hex ids grow with creation time, so _id breaks ties within one timestamp
	findOptions := options.Find().SetSort(bson.D{{Key: "dateReported", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "finding issues")
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, errors.Wrap(err, "decoding issues")
	}
	return issues, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var issue models.Issue
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return models.Issue{}, ErrIssueNotFound
	}
	if err != nil {
		return models.Issue{}, errors.Wrap(err, "finding issue")
	}
	return issue, nil
}

func (s *MongoStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return errors.Wrap(err, "updating issue status")
	}
	if result.MatchedCount == 0 {
		return ErrIssueNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting issue")
	}
	if result.DeletedCount == 0 {
		return ErrIssueNotFound
	}
	return nil
}
