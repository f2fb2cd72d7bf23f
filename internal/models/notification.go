// internal/models/notification.go
package models

import "time"

// NotificationStatus is the candidate-side lifecycle state.
type NotificationStatus string

const (
	NotificationNew      NotificationStatus = "new"
	NotificationViewed   NotificationStatus = "viewed"
	NotificationApplied  NotificationStatus = "applied"
	NotificationDeclined NotificationStatus = "declined"
)

// Notification is the durable record of a candidate being offered a mission.
// At most one exists per (candidate, mission) pair. Never deleted, only
// status-transitioned.
type Notification struct {
	ID          string             `json:"id"`
	CandidateID string             `json:"candidateId"`
	MissionID   string             `json:"missionId"`
	Score       int                `json:"score"`
	DistanceKm  float64            `json:"distanceKm"`
	Urgency     Urgency            `json:"urgency"`
	Status      NotificationStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	RespondedAt *time.Time         `json:"respondedAt,omitempty"`
}
