package analysis

import (
	"testing"
	"time"

	"pulsefolio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(*models.User) error { return nil }
func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByIDWithProjection(string, bson.M) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByEmailWithProjection(string, bson.M) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) UpdateSetDocument(string, bson.M) error { return nil }
func (f *fakeUserRepo) Delete(string) error                    { return nil }
func (f *fakeUserRepo) GetAll() ([]models.User, error)         { return nil, nil }
func (f *fakeUserRepo) GetRole(string) (models.Role, error)    { return models.RoleUser, nil }

type fakeAnalysisRepo struct {
	published      []models.Analysis
	requestedLevel *models.RiskLevel
}

func (f *fakeAnalysisRepo) Create(*models.Analysis) error            { return nil }
func (f *fakeAnalysisRepo) UpdateSetDocument(string, bson.M) error   { return nil }
func (f *fakeAnalysisRepo) Delete(string) error                      { return nil }
func (f *fakeAnalysisRepo) GetByID(string) (*models.Analysis, error) { return nil, nil }
func (f *fakeAnalysisRepo) GetAll() ([]models.Analysis, error)       { return nil, nil }
func (f *fakeAnalysisRepo) GetPublished(level models.RiskLevel) ([]models.Analysis, error) {
	f.requestedLevel = &level
	if level == "" {
		return f.published, nil
	}
	var out []models.Analysis
	for _, a := range f.published {
		if a.RiskLevel == level {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeAnalysisRepo) GetPublishedByDay(time.Time) ([]models.Analysis, error) {
	return f.published, nil
}
func (f *fakeAnalysisRepo) MarkPublished(string, time.Time) error { return nil }

type fakeSignalRepo struct {
	active         []models.Signal
	requestedLevel *models.RiskLevel
}

func (f *fakeSignalRepo) Create(*models.Signal) error            { return nil }
func (f *fakeSignalRepo) UpdateSetDocument(string, bson.M) error { return nil }
func (f *fakeSignalRepo) Delete(string) error                    { return nil }
func (f *fakeSignalRepo) GetByID(string) (*models.Signal, error) { return nil, nil }
func (f *fakeSignalRepo) GetAll() ([]models.Signal, error)       { return nil, nil }
func (f *fakeSignalRepo) GetActive(level models.RiskLevel) ([]models.Signal, error) {
	f.requestedLevel = &level
	if level == "" {
		return f.active, nil
	}
	var out []models.Signal
	for _, s := range f.active {
		if s.RiskLevel == level {
			out = append(out, s)
		}
	}
	return out, nil
}

func feedService() (*DefaultAnalysisService, *fakeAnalysisRepo, *fakeSignalRepo, *fakeUserRepo) {
	analyses := &fakeAnalysisRepo{published: []models.Analysis{
		{ID: "a-low", RiskLevel: models.RiskLow},
		{ID: "a-med", RiskLevel: models.RiskMedium},
		{ID: "a-high", RiskLevel: models.RiskHigh},
	}}
	signals := &fakeSignalRepo{active: []models.Signal{
		{ID: "s-low", RiskLevel: models.RiskLow},
		{ID: "s-high", RiskLevel: models.RiskHigh},
	}}
	users := &fakeUserRepo{users: map[string]*models.User{
		"member-med":  {ID: "member-med", Role: models.RoleUser, RiskLevel: models.RiskMedium},
		"member-new":  {ID: "member-new", Role: models.RoleUser},
		"the-analyst": {ID: "the-analyst", Role: models.RoleAnalyst},
		"the-admin":   {ID: "the-admin", Role: models.RoleAdmin},
	}}
	svc := &DefaultAnalysisService{Analyses: analyses, Signals: signals, Users: users}
	return svc, analyses, signals, users
}

func TestDashboardAnalysesMatchesViewerTier(t *testing.T) {
	svc, analyses, _, _ := feedService()

	got, err := svc.DashboardAnalyses("member-med")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a-med", got[0].ID)
	require.NotNil(t, analyses.requestedLevel)
	assert.Equal(t, models.RiskMedium, *analyses.requestedLevel)
}

func TestDashboardAnalysesAnalystSeesAllTiers(t *testing.T) {
	svc, _, _, _ := feedService()

	got, err := svc.DashboardAnalyses("the-analyst")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = svc.DashboardAnalyses("the-admin")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDashboardRequiresAssessment(t *testing.T) {
	svc, _, _, _ := feedService()

	_, err := svc.DashboardAnalyses("member-new")
	assert.ErrorIs(t, err, ErrAssessmentRequired)

	_, err = svc.DashboardSignals("member-new")
	assert.ErrorIs(t, err, ErrAssessmentRequired)
}

func TestDashboardSignalsMatchesViewerTier(t *testing.T) {
	svc, _, signals, users := feedService()
	users.users["member-high"] = &models.User{
		ID: "member-high", Role: models.RoleUser, RiskLevel: models.RiskHigh,
	}

	got, err := svc.DashboardSignals("member-high")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s-high", got[0].ID)
	require.NotNil(t, signals.requestedLevel)
	assert.Equal(t, models.RiskHigh, *signals.requestedLevel)
}

func TestAnalysesForDayRejectsBadDate(t *testing.T) {
	svc, _, _, _ := feedService()

	_, err := svc.AnalysesForDay("28-08-2026")
	assert.Error(t, err)

	_, err = svc.AnalysesForDay("2026-08-28")
	assert.NoError(t, err)
}
