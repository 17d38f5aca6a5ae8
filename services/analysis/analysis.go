package analysis

import (
	"fmt"
	"time"

	"pulsefolio/models"
	"pulsefolio/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// publishDateLayout accepts full timestamps; bare dates go through
// AnalysesForDay's layout instead.
const publishDateLayout = time.RFC3339

func validateAnalysisInput(input AnalysisInput) error {
	if input.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !input.RiskLevel.Valid() {
		return fmt.Errorf("invalid risk level: %q", input.RiskLevel)
	}
	if !input.AssetType.Valid() {
		return fmt.Errorf("invalid asset type: %q", input.AssetType)
	}
	return nil
}

func parsePublishDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(publishDateLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("invalid publish date %q: %w", *raw, err)
	}
	return &t, nil
}

// CreateAnalysis stores a new post. A post dated in the future is held back
// and a publish task is scheduled for its publish date; anything else goes
// live immediately.
func (s *DefaultAnalysisService) CreateAnalysis(authorID string, input AnalysisInput) (*models.Analysis, error) {
	if err := validateAnalysisInput(input); err != nil {
		return nil, err
	}
	publishDate, err := parsePublishDate(input.PublishDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	a := &models.Analysis{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Content:     input.Content,
		RiskLevel:   input.RiskLevel,
		AssetType:   input.AssetType,
		EntryPrice:  input.EntryPrice,
		StopLoss:    input.StopLoss,
		TargetPrice: input.TargetPrice,
		AuthorID:    authorID,
		PublishDate: publishDate,
		Published:   publishDate == nil || !publishDate.After(now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if a.Published && a.PublishDate == nil {
		a.PublishDate = &now
	}

	if err := s.Analyses.Create(a); err != nil {
		utils.GetLogger().Error("CreateAnalysis: insert failed", zap.Error(err))
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}

	if !a.Published {
		s.schedulePublish(a.ID, *a.PublishDate)
	}

	utils.GetLogger().Info("analysis created",
		zap.String("analysisID", a.ID),
		zap.String("authorID", authorID),
		zap.Bool("published", a.Published))
	return a, nil
}

// schedulePublish enqueues the publish task for a future-dated post. A queue
// failure is logged, not returned: the post is saved and an analyst can still
// publish it by editing the date.
func (s *DefaultAnalysisService) schedulePublish(analysisID string, at time.Time) {
	task, err := NewPublishTask(analysisID)
	if err != nil {
		utils.GetLogger().Error("failed to build publish task",
			zap.String("analysisID", analysisID), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, asynq.ProcessAt(at), asynq.MaxRetry(5)); err != nil {
		utils.GetLogger().Error("failed to enqueue publish task",
			zap.String("analysisID", analysisID), zap.Error(err))
		return
	}
	utils.GetLogger().Info("publish scheduled",
		zap.String("analysisID", analysisID), zap.Time("at", at))
}

// UpdateAnalysis rewrites an existing post's authored fields. Moving the
// publish date into the future un-publishes and reschedules; moving it into
// the past publishes immediately.
func (s *DefaultAnalysisService) UpdateAnalysis(id string, input AnalysisInput) (*models.Analysis, error) {
	if err := validateAnalysisInput(input); err != nil {
		return nil, err
	}
	existing, err := s.Analyses.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch analysis: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	publishDate, err := parsePublishDate(input.PublishDate)
	if err != nil {
		return nil, err
	}
	if publishDate == nil {
		publishDate = existing.PublishDate
	}

	now := time.Now()
	published := publishDate == nil || !publishDate.After(now)

	update := bson.M{
		"title":       input.Title,
		"content":     input.Content,
		"riskLevel":   input.RiskLevel,
		"assetType":   input.AssetType,
		"entryPrice":  input.EntryPrice,
		"stopLoss":    input.StopLoss,
		"targetPrice": input.TargetPrice,
		"publishDate": publishDate,
		"published":   published,
		"updatedAt":   now,
	}
	if err := s.Analyses.UpdateSetDocument(id, update); err != nil {
		utils.GetLogger().Error("UpdateAnalysis: update failed",
			zap.String("analysisID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update analysis: %w", err)
	}

	if !published && publishDate != nil {
		s.schedulePublish(id, *publishDate)
	}

	return s.Analyses.GetByID(id)
}

// DeleteAnalysis removes a post.
func (s *DefaultAnalysisService) DeleteAnalysis(id string) error {
	if err := s.Analyses.Delete(id); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	utils.GetLogger().Info("analysis deleted", zap.String("analysisID", id))
	return nil
}

// GetAnalysis retrieves a single post by ID.
func (s *DefaultAnalysisService) GetAnalysis(id string) (*models.Analysis, error) {
	a, err := s.Analyses.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch analysis: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// ListAllAnalyses returns every post including scheduled ones (analyst
// calendar view).
func (s *DefaultAnalysisService) ListAllAnalyses() ([]models.Analysis, error) {
	return s.Analyses.GetAll()
}

// PublishScheduled flips a scheduled post live. It is safe to run more than
// once; an already-published or deleted post is a no-op.
func (s *DefaultAnalysisService) PublishScheduled(analysisID string) error {
	a, err := s.Analyses.GetByID(analysisID)
	if err != nil {
		return fmt.Errorf("failed to fetch analysis: %w", err)
	}
	if a == nil || a.Published {
		return nil
	}
	if a.PublishDate != nil && a.PublishDate.After(time.Now()) {
		// The date was pushed out after scheduling; the newer task covers it.
		return nil
	}

	if err := s.Analyses.MarkPublished(analysisID, time.Now()); err != nil {
		return fmt.Errorf("failed to publish analysis: %w", err)
	}
	utils.GetLogger().Info("scheduled analysis published", zap.String("analysisID", analysisID))
	return nil
}
