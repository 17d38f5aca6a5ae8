package analysisRepo

import (
	"time"

	"pulsefolio/models"

	"go.mongodb.org/mongo-driver/bson"
)

// AnalysisRepository defines methods for analysis post data access.
type AnalysisRepository interface {
	// Create inserts a new analysis post.
	Create(a *models.Analysis) error
	// UpdateSetDocument applies a partial $set update to an analysis document.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes an analysis post by its ID.
	Delete(id string) error
	// GetByID retrieves an analysis post by its ID.
	GetByID(id string) (*models.Analysis, error)
	// GetAll returns every post including unpublished ones, newest first
	// (analyst calendar view).
	GetAll() ([]models.Analysis, error)
	// GetPublished returns published posts, optionally filtered to one risk
	// level. Pass an empty level for all tiers.
	GetPublished(level models.RiskLevel) ([]models.Analysis, error)
	// GetPublishedByDay returns published posts whose publish date falls on
	// the given calendar day.
	GetPublishedByDay(day time.Time) ([]models.Analysis, error)
	// MarkPublished flips a scheduled post to published.
	MarkPublished(id string, at time.Time) error
}
