package models

// Question is one entry of the fixed risk-tolerance instrument. Option order
// matters: the position of the selected option defines its weight.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// QuestionnaireAnswers maps a question ID to the selected option string.
type QuestionnaireAnswers map[int]string
