package signalRepo

import (
	"context"
	"fmt"
	"time"

	"pulsefolio/config"
	"pulsefolio/database"
	"pulsefolio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSignalRepo implements SignalRepository using MongoDB.
type MongoSignalRepo struct {
	coll *mongo.Collection
}

// NewMongoSignalRepo creates a new instance of SignalRepository using MongoDB.
func NewMongoSignalRepo() SignalRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("signals")
	repo := &MongoSignalRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoSignalRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "riskLevel", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a signal by its ID.
func (r *MongoSignalRepo) GetByID(id string) (*models.Signal, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var s models.Signal
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch signal with id %s: %w", id, err)
	}
	return &s, nil
}

// Create inserts a new signal document.
func (r *MongoSignalRepo) Create(s *models.Signal) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return fmt.Errorf("failed to create signal: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial update to a signal document.
func (r *MongoSignalRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": updateDoc}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update signal with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("signal with id %s not found", id)
	}
	return nil
}

// Delete removes a signal document by its ID.
func (r *MongoSignalRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete signal with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("signal with id %s not found", id)
	}
	return nil
}
