package assessment

import (
	"fmt"
	"time"

	userRepo "pulsefolio/database/repository/user"
	"pulsefolio/models"
	"pulsefolio/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ChangeNotifier announces profile mutations that affect personalized views.
// The session manager satisfies this.
type ChangeNotifier interface {
	NotifyTierChanged(userID string)
}

// AssessmentService defines business logic for the risk questionnaire.
type AssessmentService interface {
	// Questions returns the fixed instrument.
	Questions() []models.Question
	// Submit scores a completed questionnaire, persists the resulting risk
	// level on the user's profile and returns it. A resubmission overwrites
	// the prior level.
	Submit(userID string, answers models.QuestionnaireAnswers) (models.RiskLevel, error)
}

// DefaultAssessmentService is the production implementation.
type DefaultAssessmentService struct {
	Repo     userRepo.UserRepository
	Notifier ChangeNotifier
}

// Questions returns the instrument served to clients.
func (s *DefaultAssessmentService) Questions() []models.Question {
	return Questions()
}

// Submit classifies the answers and stamps the level onto the profile.
func (s *DefaultAssessmentService) Submit(userID string, answers models.QuestionnaireAnswers) (models.RiskLevel, error) {
	level, err := ClassifyRisk(answers)
	if err != nil {
		return "", err
	}

	update := bson.M{
		"riskLevel": level,
		"updatedAt": time.Now(),
	}
	if err := s.Repo.UpdateSetDocument(userID, update); err != nil {
		utils.GetLogger().Error("Submit: failed to persist risk level",
			zap.String("userID", userID), zap.Error(err))
		return "", fmt.Errorf("failed to save assessment result: %w", err)
	}

	if s.Notifier != nil {
		s.Notifier.NotifyTierChanged(userID)
	}

	utils.GetLogger().Info("risk level assigned",
		zap.String("userID", userID), zap.String("riskLevel", string(level)))
	return level, nil
}
