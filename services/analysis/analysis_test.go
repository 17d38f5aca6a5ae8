package analysis

import (
	"testing"
	"time"

	"pulsefolio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishRepo struct {
	fakeAnalysisRepo
	byID      map[string]*models.Analysis
	published []string
}

func (p *publishRepo) GetByID(id string) (*models.Analysis, error) {
	return p.byID[id], nil
}

func (p *publishRepo) MarkPublished(id string, at time.Time) error {
	p.published = append(p.published, id)
	if a, ok := p.byID[id]; ok {
		a.Published = true
	}
	return nil
}

func TestPublishScheduledFlipsDuePost(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	repo := &publishRepo{byID: map[string]*models.Analysis{
		"a1": {ID: "a1", Published: false, PublishDate: &past},
	}}
	svc := &DefaultAnalysisService{Analyses: repo}

	require.NoError(t, svc.PublishScheduled("a1"))
	assert.Equal(t, []string{"a1"}, repo.published)
	assert.True(t, repo.byID["a1"].Published)
}

func TestPublishScheduledIdempotent(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	repo := &publishRepo{byID: map[string]*models.Analysis{
		"a1": {ID: "a1", Published: true, PublishDate: &past},
	}}
	svc := &DefaultAnalysisService{Analyses: repo}

	require.NoError(t, svc.PublishScheduled("a1"))
	assert.Empty(t, repo.published, "an already-published post must not be republished")
}

func TestPublishScheduledSkipsDeferredPost(t *testing.T) {
	// The date was pushed into the future after the original task was
	// scheduled; this task run must leave the post alone.
	future := time.Now().Add(time.Hour)
	repo := &publishRepo{byID: map[string]*models.Analysis{
		"a1": {ID: "a1", Published: false, PublishDate: &future},
	}}
	svc := &DefaultAnalysisService{Analyses: repo}

	require.NoError(t, svc.PublishScheduled("a1"))
	assert.Empty(t, repo.published)
}

func TestPublishScheduledMissingPostIsNoOp(t *testing.T) {
	repo := &publishRepo{byID: map[string]*models.Analysis{}}
	svc := &DefaultAnalysisService{Analyses: repo}
	assert.NoError(t, svc.PublishScheduled("gone"))
}

func TestValidateAnalysisInput(t *testing.T) {
	valid := AnalysisInput{
		Title:     "Gold outlook Q4",
		RiskLevel: models.RiskMedium,
		AssetType: models.AssetGold,
	}
	assert.NoError(t, validateAnalysisInput(valid))

	missingTitle := valid
	missingTitle.Title = ""
	assert.Error(t, validateAnalysisInput(missingTitle))

	badLevel := valid
	badLevel.RiskLevel = "Extreme"
	assert.Error(t, validateAnalysisInput(badLevel))

	badAsset := valid
	badAsset.AssetType = "Beanie Babies"
	assert.Error(t, validateAnalysisInput(badAsset))
}

func TestUpdateSignalStatusValidation(t *testing.T) {
	svc := &DefaultAnalysisService{Signals: &fakeSignalRepo{}}

	_, err := svc.UpdateSignalStatus("s1", models.SignalStatus("paused"))
	assert.Error(t, err)
}

func TestParsePublishDate(t *testing.T) {
	got, err := parsePublishDate(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	raw := "2026-09-01T09:00:00Z"
	got, err = parsePublishDate(&raw)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())

	bad := "next tuesday"
	_, err = parsePublishDate(&bad)
	assert.Error(t, err)
}
