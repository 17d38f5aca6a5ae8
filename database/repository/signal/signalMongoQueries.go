// File: database/repository/signal/signalMongoQueries.go
package signalRepo

import (
	"fmt"
	"time"

	"pulsefolio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAll returns every signal, newest first.
func (r *MongoSignalRepo) GetAll() ([]models.Signal, error) {
	return r.find(bson.M{})
}

// GetActive returns active signals, optionally filtered to one risk level.
func (r *MongoSignalRepo) GetActive(level models.RiskLevel) ([]models.Signal, error) {
	filter := bson.M{"status": models.SignalActive}
	if level != "" {
		filter["riskLevel"] = level
	}
	return r.find(filter)
}

func (r *MongoSignalRepo) find(filter bson.M) ([]models.Signal, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}
	defer cursor.Close(ctx)

	var signals []models.Signal
	if err := cursor.All(ctx, &signals); err != nil {
		return nil, fmt.Errorf("failed to decode signals: %w", err)
	}
	return signals, nil
}
