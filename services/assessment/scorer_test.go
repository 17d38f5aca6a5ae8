package assessment

import (
	"testing"

	"pulsefolio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answersAt builds a submission selecting the option at the given 0-based
// index for every question.
func answersAt(idx int) models.QuestionnaireAnswers {
	answers := models.QuestionnaireAnswers{}
	for _, q := range Questions() {
		answers[q.ID] = q.Options[idx]
	}
	return answers
}

func TestClassifyRiskBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		answers models.QuestionnaireAnswers
		want    models.RiskLevel
	}{
		{"all first options, avg 1", answersAt(0), models.RiskLow},
		{"all second options, avg exactly 2", answersAt(1), models.RiskLow},
		{"all third options, avg exactly 3", answersAt(2), models.RiskMedium},
		{"all fourth options, avg 4", answersAt(3), models.RiskHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyRisk(tc.answers)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyRiskMixedAnswers(t *testing.T) {
	// Weights 1+2+4 = 7, avg 2.33 -> Medium.
	qs := Questions()
	answers := models.QuestionnaireAnswers{
		qs[0].ID: qs[0].Options[0],
		qs[1].ID: qs[1].Options[1],
		qs[2].ID: qs[2].Options[3],
	}
	got, err := ClassifyRisk(answers)
	require.NoError(t, err)
	assert.Equal(t, models.RiskMedium, got)
}

func TestClassifyRiskDeterministic(t *testing.T) {
	answers := answersAt(2)
	first, err := ClassifyRisk(answers)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ClassifyRisk(answers)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifyRiskMissingAnswers(t *testing.T) {
	qs := Questions()
	answers := models.QuestionnaireAnswers{
		qs[1].ID: qs[1].Options[0],
	}
	_, err := ClassifyRisk(answers)
	require.Error(t, err)

	var incomplete IncompleteAnswersError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []int{qs[0].ID, qs[2].ID}, incomplete.Missing)
}

func TestClassifyRiskEmptySubmission(t *testing.T) {
	_, err := ClassifyRisk(models.QuestionnaireAnswers{})
	var incomplete IncompleteAnswersError
	require.ErrorAs(t, err, &incomplete)
	assert.Len(t, incomplete.Missing, 3)
}

func TestClassifyRiskUnknownOptionWeighsZero(t *testing.T) {
	// Two top-weight answers plus one unrecognized one: 4+4+0 = 8,
	// avg 2.67 -> Medium. The unknown option does not reject the submission.
	qs := Questions()
	answers := models.QuestionnaireAnswers{
		qs[0].ID: qs[0].Options[3],
		qs[1].ID: qs[1].Options[3],
		qs[2].ID: "YOLO everything",
	}
	got, err := ClassifyRisk(answers)
	require.NoError(t, err)
	assert.Equal(t, models.RiskMedium, got)
}

func TestQuestionsReturnsCopy(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 3)
	qs[0].Prompt = "mutated"
	assert.NotEqual(t, "mutated", Questions()[0].Prompt)
}
