// internal/workers/matching/match-and-dispatch/models.go
package matchanddispatch

import "medimatch-workers/internal/models"

type Input struct {
	MissionID     string                    `json:"missionId"`
	Mission       *models.Mission           `json:"mission,omitempty"`
	CandidatePool []models.CandidateProfile `json:"candidatePool,omitempty"`
}

type Output struct {
	MissionID     string                   `json:"missionId"`
	PoolSize      int                      `json:"poolSize"`
	Shortlisted   int                      `json:"shortlisted"`
	Results       []models.MatchResult     `json:"results"`
	Notifications []models.DispatchOutcome `json:"notifications"`
}

// InputSchema validates job variables before they reach the engine.
const InputSchema = `{
	"type": "object",
	"properties": {
		"missionId": {"type": "string"},
		"mission": {"type": "object"},
		"candidatePool": {"type": "array", "items": {"type": "object"}}
	},
	"anyOf": [
		{"required": ["missionId"]},
		{"required": ["mission"]}
	]
}`
