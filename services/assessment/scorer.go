package assessment

import (
	"fmt"
	"sort"

	"pulsefolio/models"
)

// The fixed risk-tolerance instrument. Option order defines the weight: the
// least risk-tolerant option scores 1, the most scores 4.
var questions = []models.Question{
	{
		ID:     1,
		Prompt: "What is your investment time horizon?",
		Options: []string{
			"1-3 years",
			"3-5 years",
			"5-10 years",
			"10+ years",
		},
	},
	{
		ID:     2,
		Prompt: "How much investment experience do you have?",
		Options: []string{
			"None",
			"Some",
			"Moderate",
			"Extensive",
		},
	},
	{
		ID:     3,
		Prompt: "What is your primary investment goal?",
		Options: []string{
			"Capital preservation",
			"Income generation",
			"Balanced growth",
			"Aggressive growth",
		},
	},
}

// Questions returns the instrument served to clients.
func Questions() []models.Question {
	out := make([]models.Question, len(questions))
	copy(out, questions)
	return out
}

// IncompleteAnswersError reports which question IDs were missing from a
// submission. Partial questionnaires are never scored.
type IncompleteAnswersError struct {
	Missing []int
}

func (e IncompleteAnswersError) Error() string {
	return fmt.Sprintf("questionnaire incomplete: missing answers for questions %v", e.Missing)
}

// ClassifyRisk maps a completed questionnaire onto a risk level. The same
// answers always produce the same level.
//
// Every question must be answered or the submission is rejected with
// IncompleteAnswersError. An answer outside its question's option list
// contributes weight 0 rather than failing the submission. The average
// weight classifies with boundaries closed on the lower level:
// avg <= 2 is Low, avg <= 3 is Medium, above that High.
func ClassifyRisk(answers models.QuestionnaireAnswers) (models.RiskLevel, error) {
	var missing []int
	for _, q := range questions {
		if _, ok := answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return "", IncompleteAnswersError{Missing: missing}
	}

	total := 0
	for _, q := range questions {
		total += optionWeight(q, answers[q.ID])
	}

	avg := float64(total) / float64(len(questions))
	switch {
	case avg <= 2:
		return models.RiskLow, nil
	case avg <= 3:
		return models.RiskMedium, nil
	default:
		return models.RiskHigh, nil
	}
}

// optionWeight returns 1-based position of the selected option, or 0 when the
// answer is not in the question's option list.
func optionWeight(q models.Question, answer string) int {
	for i, opt := range q.Options {
		if opt == answer {
			return i + 1
		}
	}
	return 0
}
