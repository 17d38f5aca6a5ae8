package analysisRepo

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

// MongoAnalysisRepo implements AnalysisRepository using MongoDB.
type MongoAnalysisRepo struct {
	coll *mongo.Collection
}

// NewMongoAnalysisRepo creates a new instance of AnalysisRepository using MongoDB.
func NewMongoAnalysisRepo() AnalysisRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("analysis_posts")
	repo := &MongoAnalysisRepo{coll: coll}

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
func (r *MongoAnalysisRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "riskLevel", Value: 1}, {Key: "published", Value: 1}}},
		{Keys: bson.D{{Key: "publishDate", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an analysis post by its ID.
func (r *MongoAnalysisRepo) GetByID(id string) (*models.Analysis, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Analysis
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch analysis with id %s: %w", id, err)
	}
	return &a, nil
}
