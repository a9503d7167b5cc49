package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeAnalyzeInsights = "insights:analyze"
	TypeClosePortal     = "portal:close"

	// ClosePortalTaskID only one automatic close is pending at a time.
	ClosePortalTaskID = "portal-close"
)

type AnalyzePayload struct {
	InsightID string `json:"insight_id"`
}

func NewAnalyzeInsightsTask(insightID string) (*asynq.Task, error) {
	payload, err := json.Marshal(AnalyzePayload{InsightID: insightID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAnalyzeInsights, payload), nil
}

func NewClosePortalTask() *asynq.Task {
	return asynq.NewTask(TypeClosePortal, nil)
}

// AnalyzeTaskID task id for an insight run; enqueueing twice is rejected.
func AnalyzeTaskID(insightID string) string {
	return "insight-" + insightID
}
