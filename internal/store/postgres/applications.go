// internal/store/postgres/applications.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	apperrors "medimatch-workers/internal/common/errors"
	"medimatch-workers/internal/models"
)

// ApplicationStore persists applications derived from applied notifications.
type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

func (s *ApplicationStore) Create(ctx context.Context, app *models.Application) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (id, mission_id, candidate_id, status, feedback, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.MissionID, app.CandidateID, app.Status, app.Feedback, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

func (s *ApplicationStore) GetByID(ctx context.Context, id string) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, mission_id, candidate_id, status, feedback, created_at, updated_at
		FROM applications WHERE id = $1`, id)

	var app models.Application
	err := row.Scan(&app.ID, &app.MissionID, &app.CandidateID, &app.Status, &app.Feedback, &app.CreatedAt, &app.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewApplicationNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateDecision writes the establishment decision optimistically, rejecting
// the write when the application already left the expected status.
func (s *ApplicationStore) UpdateDecision(ctx context.Context, id string, from, to models.ApplicationStatus, feedback string) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE applications
		SET status = $3, feedback = $4, updated_at = $5
		WHERE id = $1 AND status = $2
		RETURNING id, mission_id, candidate_id, status, feedback, created_at, updated_at`,
		id, from, to, feedback, time.Now().UTC(),
	)

	var app models.Application
	err := row.Scan(&app.ID, &app.MissionID, &app.CandidateID, &app.Status, &app.Feedback, &app.CreatedAt, &app.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewTransitionConflictError("application", id)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByMission returns every application for a mission, newest first.
func (s *ApplicationStore) ListByMission(ctx context.Context, missionID string) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mission_id, candidate_id, status, feedback, created_at, updated_at
		FROM applications WHERE mission_id = $1 ORDER BY created_at DESC, id`, missionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(&app.ID, &app.MissionID, &app.CandidateID, &app.Status, &app.Feedback, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}
