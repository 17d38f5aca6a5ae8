package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeAnalysisPublish is the queue task that flips a scheduled post live at
// its publish date.
const TypeAnalysisPublish = "analysis:publish"

// PublishPayload identifies the post a publish task targets.
type PublishPayload struct {
	AnalysisID string `json:"analysisId"`
}

// NewPublishTask builds the queue task for a scheduled post.
func NewPublishTask(analysisID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PublishPayload{AnalysisID: analysisID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal publish payload: %w", err)
	}
	return asynq.NewTask(TypeAnalysisPublish, payload), nil
}
