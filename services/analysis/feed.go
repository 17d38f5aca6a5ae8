package analysis

import (
	"fmt"
	"time"

	"pulsefolio/models"
)

// viewerTier resolves the risk level the viewer's feed filters on. Analysts
// and admins see all tiers (empty level); members without an assessment get
// ErrAssessmentRequired.
func (s *DefaultAnalysisService) viewerTier(viewerID string) (models.RiskLevel, error) {
	u, err := s.Users.GetByID(viewerID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch viewer profile: %w", err)
	}
	if u == nil {
		return "", fmt.Errorf("viewer profile not found")
	}
	if u.Role.Meets(models.RoleAnalyst) {
		return "", nil
	}
	if !u.RiskLevel.Valid() {
		return "", ErrAssessmentRequired
	}
	return u.RiskLevel, nil
}

// DashboardAnalyses returns the published posts matching the viewer's risk
// tier, newest first.
func (s *DefaultAnalysisService) DashboardAnalyses(viewerID string) ([]models.Analysis, error) {
	tier, err := s.viewerTier(viewerID)
	if err != nil {
		return nil, err
	}
	return s.Analyses.GetPublished(tier)
}

// DashboardSignals returns the active signals matching the viewer's risk
// tier, newest first.
func (s *DefaultAnalysisService) DashboardSignals(viewerID string) ([]models.Signal, error) {
	tier, err := s.viewerTier(viewerID)
	if err != nil {
		return nil, err
	}
	return s.Signals.GetActive(tier)
}

// dayLayout is the calendar-day format accepted by the day view.
const dayLayout = "2006-01-02"

// AnalysesForDay returns published posts dated on the given calendar day
// (UTC). The day view is not tier-filtered; it backs the shared calendar.
func (s *DefaultAnalysisService) AnalysesForDay(dateStr string) ([]models.Analysis, error) {
	day, err := time.ParseInLocation(dayLayout, dateStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
	}
	return s.Analyses.GetPublishedByDay(day)
}
