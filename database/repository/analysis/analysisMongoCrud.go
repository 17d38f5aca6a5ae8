// File: database/repository/analysis/analysisMongoCrud.go
package analysisRepo

import (
	"fmt"
	"time"

	"pulsefolio/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new analysis document.
func (r *MongoAnalysisRepo) Create(a *models.Analysis) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial update to an analysis document.
func (r *MongoAnalysisRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": updateDoc}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update analysis with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("analysis with id %s not found", id)
	}
	return nil
}

// Delete removes an analysis document by its ID.
func (r *MongoAnalysisRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete analysis with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("analysis with id %s not found", id)
	}
	return nil
}

// MarkPublished flips a scheduled analysis to published.
func (r *MongoAnalysisRepo) MarkPublished(id string, at time.Time) error {
	return r.UpdateSetDocument(id, bson.M{
		"published":   true,
		"publishDate": at,
		"updatedAt":   time.Now(),
	})
}
