// Package lifecycle governs the linked notification and application state
// machines.
//
// Notification (candidate-side):
//
//	new ──► viewed ──► applied
//	 │         │
//	 └─────────┴─────► declined
//
// applied and declined are terminal. Moving to applied creates an
// Application in pending.
//
// Application (establishment-side):
//
//	pending ──► accepted
//	    └─────► rejected
//
// accepted and rejected are terminal.
package lifecycle

import (
	"fmt"

	"medimatch-workers/internal/models"
)

// notificationTransitions lists every allowed (from → to) pair.
var notificationTransitions = map[models.NotificationStatus][]models.NotificationStatus{
	models.NotificationNew:    {models.NotificationViewed, models.NotificationApplied, models.NotificationDeclined},
	models.NotificationViewed: {models.NotificationApplied, models.NotificationDeclined},
	// applied and declined are terminal, no outgoing transitions
}

var applicationTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationPending: {models.ApplicationAccepted, models.ApplicationRejected},
	// accepted and rejected are terminal
}

// ParseResponse converts a raw candidate response to a notification status,
// returning an error for unknown values.
func ParseResponse(s string) (models.NotificationStatus, error) {
	st := models.NotificationStatus(s)
	switch st {
	case models.NotificationViewed, models.NotificationApplied, models.NotificationDeclined:
		return st, nil
	}
	return "", fmt.Errorf("unknown notification response %q", s)
}

// ParseDecision converts a raw establishment decision to an application
// status, returning an error for unknown values.
func ParseDecision(s string) (models.ApplicationStatus, error) {
	st := models.ApplicationStatus(s)
	switch st {
	case models.ApplicationAccepted, models.ApplicationRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application decision %q", s)
}

// CanTransitionNotification returns true when moving from → to is permitted.
func CanTransitionNotification(from, to models.NotificationStatus) bool {
	for _, s := range notificationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionApplication returns true when moving from → to is permitted.
func CanTransitionApplication(from, to models.ApplicationStatus) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalNotification reports whether a notification status has no
// outgoing transitions.
func IsTerminalNotification(s models.NotificationStatus) bool {
	return len(notificationTransitions[s]) == 0
}
