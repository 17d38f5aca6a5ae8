package signalRepo

import (
	"pulsefolio/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SignalRepository defines methods for trading signal data access.
type SignalRepository interface {
	// Create inserts a new signal.
	Create(s *models.Signal) error
	// UpdateSetDocument applies a partial $set update to a signal document.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a signal by its ID.
	Delete(id string) error
	// GetByID retrieves a signal by its ID.
	GetByID(id string) (*models.Signal, error)
	// GetAll returns every signal, newest first.
	GetAll() ([]models.Signal, error)
	// GetActive returns active signals, optionally filtered to one risk
	// level. Pass an empty level for all tiers.
	GetActive(level models.RiskLevel) ([]models.Signal, error)
}
