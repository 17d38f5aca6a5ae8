package analysis

import (
	"fmt"
	"time"

	"pulsefolio/models"
	"pulsefolio/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func validateSignalInput(input SignalInput) error {
	if input.Title == "" {
		return fmt.Errorf("title is required")
	}
	if input.EntryPrice <= 0 {
		return fmt.Errorf("entry price must be positive")
	}
	if !input.RiskLevel.Valid() {
		return fmt.Errorf("invalid risk level: %q", input.RiskLevel)
	}
	return nil
}

// CreateSignal stores a new signal in the active state.
func (s *DefaultAnalysisService) CreateSignal(input SignalInput) (*models.Signal, error) {
	if err := validateSignalInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	sig := &models.Signal{
		ID:          uuid.NewString(),
		Title:       input.Title,
		EntryPrice:  input.EntryPrice,
		StopLoss:    input.StopLoss,
		TargetPrice: input.TargetPrice,
		RiskLevel:   input.RiskLevel,
		Status:      models.SignalActive,
		Commentary:  input.Commentary,
		AnalysisID:  input.AnalysisID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Signals.Create(sig); err != nil {
		utils.GetLogger().Error("CreateSignal: insert failed", zap.Error(err))
		return nil, fmt.Errorf("failed to create signal: %w", err)
	}

	utils.GetLogger().Info("signal created", zap.String("signalID", sig.ID))
	return sig, nil
}

// UpdateSignal rewrites a signal's authored fields. Status changes go through
// UpdateSignalStatus.
func (s *DefaultAnalysisService) UpdateSignal(id string, input SignalInput) (*models.Signal, error) {
	if err := validateSignalInput(input); err != nil {
		return nil, err
	}
	existing, err := s.Signals.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signal: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	update := bson.M{
		"title":       input.Title,
		"entryPrice":  input.EntryPrice,
		"stopLoss":    input.StopLoss,
		"targetPrice": input.TargetPrice,
		"riskLevel":   input.RiskLevel,
		"commentary":  input.Commentary,
		"analysisId":  input.AnalysisID,
		"updatedAt":   time.Now(),
	}
	if err := s.Signals.UpdateSetDocument(id, update); err != nil {
		utils.GetLogger().Error("UpdateSignal: update failed",
			zap.String("signalID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update signal: %w", err)
	}

	return s.Signals.GetByID(id)
}

// UpdateSignalStatus moves a signal through its lifecycle (active, closed,
// revised).
func (s *DefaultAnalysisService) UpdateSignalStatus(id string, status models.SignalStatus) (*models.Signal, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid signal status: %q", status)
	}
	existing, err := s.Signals.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signal: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	update := bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}
	if err := s.Signals.UpdateSetDocument(id, update); err != nil {
		return nil, fmt.Errorf("failed to update signal status: %w", err)
	}

	utils.GetLogger().Info("signal status updated",
		zap.String("signalID", id), zap.String("status", string(status)))
	return s.Signals.GetByID(id)
}

// DeleteSignal removes a signal.
func (s *DefaultAnalysisService) DeleteSignal(id string) error {
	if err := s.Signals.Delete(id); err != nil {
		return fmt.Errorf("failed to delete signal: %w", err)
	}
	utils.GetLogger().Info("signal deleted", zap.String("signalID", id))
	return nil
}

// ListAllSignals returns every signal regardless of status (analyst view).
func (s *DefaultAnalysisService) ListAllSignals() ([]models.Signal, error) {
	return s.Signals.GetAll()
}
