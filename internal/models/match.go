// internal/models/match.go
package models

// CriterionScore is one evaluated scoring dimension with its justification.
type CriterionScore struct {
	Criterion  string `json:"criterion"`
	Points     int    `json:"points"`
	Label      string `json:"label"`
	Applicable bool   `json:"applicable"`
}

// ScoreBreakdown is the itemized result of scoring one candidate against one
// mission. Ephemeral: the caller decides whether to persist it.
type ScoreBreakdown struct {
	CandidateID string           `json:"candidateId"`
	TotalScore  int              `json:"totalScore"`
	Criteria    []CriterionScore `json:"criteria"`
	Confidence  float64          `json:"confidence"`
	DistanceKm  float64          `json:"distanceKm"`
	Eligible    bool             `json:"eligible"`
}

// MatchResult is one ranked shortlist entry.
type MatchResult struct {
	CandidateID string         `json:"candidateId"`
	Rank        int            `json:"rank"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	Selected    bool           `json:"selected"`
}

// Dispatch outcome statuses.
const (
	DispatchDelivered = "delivered"
	DispatchFailed    = "failed"
	DispatchSkipped   = "skipped"
)

// DispatchOutcome records what happened for one shortlisted candidate.
type DispatchOutcome struct {
	CandidateID    string `json:"candidateId"`
	NotificationID string `json:"notificationId,omitempty"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
}
