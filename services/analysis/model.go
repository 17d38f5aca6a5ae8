package analysis

import (
	"errors"

	analysisRepo "pulsefolio/database/repository/analysis"
	signalRepo "pulsefolio/database/repository/signal"
	userRepo "pulsefolio/database/repository/user"
	"pulsefolio/models"

	"github.com/hibiken/asynq"
)

// ErrAssessmentRequired signals a dashboard request from a user who has not
// completed the risk questionnaire yet.
var ErrAssessmentRequired = errors.New("complete the risk assessment to see personalized content")

// ErrNotFound signals a lookup for a missing analysis or signal.
var ErrNotFound = errors.New("content not found")

// AnalysisInput carries the analyst-authored fields of a post. A future
// PublishDate schedules the post instead of publishing it immediately.
type AnalysisInput struct {
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	RiskLevel   models.RiskLevel  `json:"riskLevel"`
	AssetType   models.AssetType  `json:"assetType"`
	EntryPrice  *float64          `json:"entryPrice,omitempty"`
	StopLoss    *float64          `json:"stopLoss,omitempty"`
	TargetPrice *float64          `json:"targetPrice,omitempty"`
	PublishDate *string           `json:"publishDate,omitempty"`
}

// SignalInput carries the analyst-authored fields of a trading signal.
type SignalInput struct {
	Title       string           `json:"title"`
	EntryPrice  float64          `json:"entryPrice"`
	StopLoss    *float64         `json:"stopLoss,omitempty"`
	TargetPrice *float64         `json:"targetPrice,omitempty"`
	RiskLevel   models.RiskLevel `json:"riskLevel"`
	Commentary  string           `json:"commentary,omitempty"`
	AnalysisID  string           `json:"analysisId,omitempty"`
}

// AnalysisService defines business logic for analyses and trading signals.
type AnalysisService interface {
	// Analyst surface.
	CreateAnalysis(authorID string, input AnalysisInput) (*models.Analysis, error)
	UpdateAnalysis(id string, input AnalysisInput) (*models.Analysis, error)
	DeleteAnalysis(id string) error
	GetAnalysis(id string) (*models.Analysis, error)
	ListAllAnalyses() ([]models.Analysis, error)

	CreateSignal(input SignalInput) (*models.Signal, error)
	UpdateSignal(id string, input SignalInput) (*models.Signal, error)
	UpdateSignalStatus(id string, status models.SignalStatus) (*models.Signal, error)
	DeleteSignal(id string) error
	ListAllSignals() ([]models.Signal, error)

	// Member surface. Content is matched to the viewer's risk tier; analysts
	// and admins see everything.
	DashboardAnalyses(viewerID string) ([]models.Analysis, error)
	DashboardSignals(viewerID string) ([]models.Signal, error)
	AnalysesForDay(dateStr string) ([]models.Analysis, error)

	// PublishScheduled flips a due scheduled post to published. Invoked by
	// the queue worker.
	PublishScheduled(analysisID string) error
}

// DefaultAnalysisService is the production implementation.
type DefaultAnalysisService struct {
	Analyses analysisRepo.AnalysisRepository
	Signals  signalRepo.SignalRepository
	Users    userRepo.UserRepository
	Queue    *asynq.Client
}
