// internal/lifecycle/service.go
package lifecycle

import (
	"context"
	"time"

	"medimatch-workers/internal/common/errors"
	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/common/metrics"
	"medimatch-workers/internal/models"

	"github.com/google/uuid"
)

// NotificationStore is the persistence contract for notification transitions.
// UpdateStatus must be optimistic: it only writes when the stored status still
// equals from, and reports errors.ErrCodeTransitionConflict otherwise.
type NotificationStore interface {
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	UpdateStatus(ctx context.Context, id string, from, to models.NotificationStatus, respondedAt *time.Time) (*models.Notification, error)
}

// ApplicationStore persists applications with the same optimistic discipline.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	UpdateDecision(ctx context.Context, id string, from, to models.ApplicationStatus, feedback string) (*models.Application, error)
	ListByMission(ctx context.Context, missionID string) ([]models.Application, error)
}

// Service applies candidate responses and establishment decisions.
type Service struct {
	notifications NotificationStore
	applications  ApplicationStore
	logger        logger.Logger
	now           func() time.Time
}

func NewService(notifications NotificationStore, applications ApplicationStore, log logger.Logger) *Service {
	return &Service{
		notifications: notifications,
		applications:  applications,
		logger:        log.WithFields(map[string]interface{}{"component": "lifecycle"}),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// RecordResponse transitions a notification on a candidate response
// (viewed, applied or declined). Applying additionally creates a pending
// Application. A transition out of a terminal or non-adjacent state is
// rejected with INVALID_TRANSITION and the stored status is left untouched.
func (s *Service) RecordResponse(ctx context.Context, notificationID string, response models.NotificationStatus) (*models.Notification, error) {
	notification, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if !CanTransitionNotification(notification.Status, response) {
		metrics.TransitionsRejected.WithLabelValues("notification").Inc()
		s.logger.Warn("notification transition rejected", map[string]interface{}{
			"notificationId": notificationID,
			"from":           notification.Status,
			"to":             response,
		})
		return nil, errors.NewInvalidTransitionError("notification", string(notification.Status), string(response))
	}

	var respondedAt *time.Time
	if response == models.NotificationApplied || response == models.NotificationDeclined {
		t := s.now()
		respondedAt = &t
	}

	updated, err := s.notifications.UpdateStatus(ctx, notificationID, notification.Status, response, respondedAt)
	if err != nil {
		return nil, err
	}

	if response == models.NotificationApplied {
		app := &models.Application{
			ID:          uuid.New().String(),
			MissionID:   updated.MissionID,
			CandidateID: updated.CandidateID,
			Status:      models.ApplicationPending,
			CreatedAt:   s.now(),
			UpdatedAt:   s.now(),
		}
		if err := s.applications.Create(ctx, app); err != nil {
			return nil, err
		}
		s.logger.Info("application created", map[string]interface{}{
			"applicationId":  app.ID,
			"missionId":      app.MissionID,
			"candidateId":    app.CandidateID,
			"notificationId": notificationID,
		})
	}

	return updated, nil
}

// DecideApplication applies an establishment decision (accepted or rejected)
// with optional feedback. An application leaves pending exactly once.
func (s *Service) DecideApplication(ctx context.Context, applicationID string, decision models.ApplicationStatus, feedback string) (*models.Application, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if !CanTransitionApplication(app.Status, decision) {
		metrics.TransitionsRejected.WithLabelValues("application").Inc()
		s.logger.Warn("application transition rejected", map[string]interface{}{
			"applicationId": applicationID,
			"from":          app.Status,
			"to":            decision,
		})
		return nil, errors.NewInvalidTransitionError("application", string(app.Status), string(decision))
	}

	updated, err := s.applications.UpdateDecision(ctx, applicationID, app.Status, decision, feedback)
	if err != nil {
		return nil, err
	}

	s.logger.Info("application decided", map[string]interface{}{
		"applicationId": applicationID,
		"decision":      decision,
	})
	return updated, nil
}

// MissionApplications lists every application for a mission, so the
// establishment can implement its own sibling-rejection policy.
func (s *Service) MissionApplications(ctx context.Context, missionID string) ([]models.Application, error) {
	return s.applications.ListByMission(ctx, missionID)
}
