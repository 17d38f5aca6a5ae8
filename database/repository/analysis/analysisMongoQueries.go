// File: database/repository/analysis/analysisMongoQueries.go
package analysisRepo

import (
	"fmt"
	"time"

	"pulsefolio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAll returns every analysis post, newest first, including unpublished ones.
func (r *MongoAnalysisRepo) GetAll() ([]models.Analysis, error) {
	return r.find(bson.M{})
}

// GetPublished returns published posts, optionally filtered to one risk level.
func (r *MongoAnalysisRepo) GetPublished(level models.RiskLevel) ([]models.Analysis, error) {
	filter := bson.M{"published": true}
	if level != "" {
		filter["riskLevel"] = level
	}
	return r.find(filter)
}

// GetPublishedByDay returns published posts whose publish date falls on the
// given calendar day (UTC day boundaries).
func (r *MongoAnalysisRepo) GetPublishedByDay(day time.Time) ([]models.Analysis, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	filter := bson.M{
		"published":   true,
		"publishDate": bson.M{"$gte": start, "$lt": end},
	}
	return r.find(filter)
}

func (r *MongoAnalysisRepo) find(filter bson.M) ([]models.Analysis, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "publishDate", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer cursor.Close(ctx)

	var analyses []models.Analysis
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, fmt.Errorf("failed to decode analyses: %w", err)
	}
	return analyses, nil
}
