// internal/transport/transport.go
package transport

import "context"

// Payload is the notification content handed to a transport. Wire format
// (device tokens, platform payload shape) is entirely the transport's concern.
type Payload struct {
	NotificationID string  `json:"notificationId"`
	MissionID      string  `json:"missionId"`
	Score          int     `json:"score"`
	DistanceKm     float64 `json:"distanceKm"`
	Urgency        string  `json:"urgency"`
}

// PushTransport delivers one notification to one candidate, best effort.
// A returned error is recorded against that candidate only.
type PushTransport interface {
	Send(ctx context.Context, candidateID string, payload Payload) error
}
