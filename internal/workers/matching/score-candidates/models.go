// internal/workers/matching/score-candidates/models.go
package scorecandidates

import "medimatch-workers/internal/models"

type Input struct {
	MissionID     string                    `json:"missionId"`
	Mission       *models.Mission           `json:"mission,omitempty"`
	CandidatePool []models.CandidateProfile `json:"candidatePool,omitempty"`
}

type Output struct {
	MissionID  string                  `json:"missionId"`
	PoolSize   int                     `json:"poolSize"`
	Breakdowns []models.ScoreBreakdown `json:"breakdowns"`
	Results    []models.MatchResult    `json:"results"`
}

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
