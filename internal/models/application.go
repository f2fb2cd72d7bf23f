// internal/models/application.go
package models

import "time"

// ApplicationStatus is the establishment-side lifecycle state.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is created when a candidate applies to a notified mission.
// It leaves pending exactly once.
type Application struct {
	ID          string            `json:"id"`
	MissionID   string            `json:"missionId"`
	CandidateID string            `json:"candidateId"`
	Status      ApplicationStatus `json:"status"`
	Feedback    string            `json:"feedback,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
