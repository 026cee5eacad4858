package store

import (
	"context"
	"fmt"
	"time"

	"course-feedback/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const feedbackCollection = "feedback"

// MongoStore keeps feedback in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// OpenMongo connects to uri and verifies the connection with a ping.
func OpenMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(dbName).Collection(feedbackCollection),
	}, nil
}

// EnsureIndexes creates the index backing ListRecent.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

func (s *MongoStore) Insert(ctx context.Context, f *models.Feedback) error {
	if f.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		f.ID = id.String()
	}
	// mongo stores milliseconds
	f.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := s.collection.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

func (s *MongoStore) ListRecent(ctx context.Context) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.Feedback{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding feedback: %w", err)
	}
	return records, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
