// Package memory provides in-memory notification and application stores with
// the same uniqueness and optimistic-transition discipline as the postgres
// stores. Used by integration tests and local runs without a database.
package memory

import (
	"context"
	"sync"
	"time"

	apperrors "medimatch-workers/internal/common/errors"
	"medimatch-workers/internal/models"
)

type Store struct {
	mu            sync.Mutex
	notifications map[string]*models.Notification
	byPair        map[[2]string]string // (candidateID, missionID) -> notification id
	applications  map[string]*models.Application
}

func New() *Store {
	return &Store{
		notifications: make(map[string]*models.Notification),
		byPair:        make(map[[2]string]string),
		applications:  make(map[string]*models.Application),
	}
}

// Create enforces at-most-one notification per (candidate, mission) under
// the store lock, mirroring the postgres unique constraint.
func (s *Store) Create(ctx context.Context, n *models.Notification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]string{n.CandidateID, n.MissionID}
	if _, exists := s.byPair[key]; exists {
		return false, nil
	}
	clone := *n
	s.notifications[n.ID] = &clone
	s.byPair[key] = n.ID
	return true, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, apperrors.NewNotificationNotFoundError(id)
	}
	clone := *n
	return &clone, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id string, from, to models.NotificationStatus, respondedAt *time.Time) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, apperrors.NewNotificationNotFoundError(id)
	}
	if n.Status != from {
		return nil, apperrors.NewTransitionConflictError("notification", id)
	}
	n.Status = to
	if respondedAt != nil {
		t := *respondedAt
		n.RespondedAt = &t
	}
	clone := *n
	return &clone, nil
}

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *app
	s.applications[app.ID] = &clone
	return nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[id]
	if !ok {
		return nil, apperrors.NewApplicationNotFoundError(id)
	}
	clone := *app
	return &clone, nil
}

func (s *Store) UpdateApplicationDecision(ctx context.Context, id string, from, to models.ApplicationStatus, feedback string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[id]
	if !ok {
		return nil, apperrors.NewApplicationNotFoundError(id)
	}
	if app.Status != from {
		return nil, apperrors.NewTransitionConflictError("application", id)
	}
	app.Status = to
	app.Feedback = feedback
	app.UpdatedAt = time.Now().UTC()
	clone := *app
	return &clone, nil
}

func (s *Store) ListApplicationsByMission(ctx context.Context, missionID string) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Application
	for _, app := range s.applications {
		if app.MissionID == missionID {
			out = append(out, *app)
		}
	}
	return out, nil
}

// Applications returns an adapter satisfying lifecycle.ApplicationStore.
func (s *Store) Applications() *ApplicationView { return &ApplicationView{s} }

// ApplicationView exposes the application half of the store under the
// lifecycle interface method names.
type ApplicationView struct {
	s *Store
}

func (v *ApplicationView) Create(ctx context.Context, app *models.Application) error {
	return v.s.CreateApplication(ctx, app)
}

func (v *ApplicationView) GetByID(ctx context.Context, id string) (*models.Application, error) {
	return v.s.GetApplication(ctx, id)
}

func (v *ApplicationView) UpdateDecision(ctx context.Context, id string, from, to models.ApplicationStatus, feedback string) (*models.Application, error) {
	return v.s.UpdateApplicationDecision(ctx, id, from, to, feedback)
}

func (v *ApplicationView) ListByMission(ctx context.Context, missionID string) ([]models.Application, error) {
	return v.s.ListApplicationsByMission(ctx, missionID)
}
