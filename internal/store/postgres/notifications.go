// internal/store/postgres/notifications.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	apperrors "medimatch-workers/internal/common/errors"
	"medimatch-workers/internal/models"
)

// NotificationStore persists notifications. The notifications table carries a
// unique constraint on (candidate_id, mission_id); that constraint, not
// application code, is what guarantees at-most-one under concurrent dispatch.
type NotificationStore struct {
	db *sql.DB
}

func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Create inserts a notification. When a row for (candidate, mission) already
// exists the insert is a no-op and created is false.
func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, candidate_id, mission_id, score, distance_km, urgency, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (candidate_id, mission_id) DO NOTHING`,
		n.ID, n.CandidateID, n.MissionID, n.Score, n.DistanceKm, n.Urgency, n.Status, n.CreatedAt,
	)
	if err != nil {
		return false, apperrors.NewDatabaseInsertFailedError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewDatabaseInsertFailedError(err)
	}
	return rows == 1, nil
}

// GetByID loads one notification.
func (s *NotificationStore) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, candidate_id, mission_id, score, distance_km, urgency, status, created_at, responded_at
		FROM notifications WHERE id = $1`, id)

	var n models.Notification
	var respondedAt sql.NullTime
	err := row.Scan(&n.ID, &n.CandidateID, &n.MissionID, &n.Score, &n.DistanceKm, &n.Urgency, &n.Status, &n.CreatedAt, &respondedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotificationNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	if respondedAt.Valid {
		n.RespondedAt = &respondedAt.Time
	}
	return &n, nil
}

// UpdateStatus transitions a notification optimistically: the write only
// lands when the stored status still equals from. A concurrent transition
// surfaces as TRANSITION_CONFLICT and the row is left unchanged.
func (s *NotificationStore) UpdateStatus(ctx context.Context, id string, from, to models.NotificationStatus, respondedAt *time.Time) (*models.Notification, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE notifications
		SET status = $3, responded_at = COALESCE($4, responded_at)
		WHERE id = $1 AND status = $2
		RETURNING id, candidate_id, mission_id, score, distance_km, urgency, status, created_at, responded_at`,
		id, from, to, respondedAt,
	)

	var n models.Notification
	var responded sql.NullTime
	err := row.Scan(&n.ID, &n.CandidateID, &n.MissionID, &n.Score, &n.DistanceKm, &n.Urgency, &n.Status, &n.CreatedAt, &responded)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewTransitionConflictError("notification", id)
	}
	if err != nil {
		return nil, err
	}
	if responded.Valid {
		n.RespondedAt = &responded.Time
	}
	return &n, nil
}

// ListByMission returns all notifications sent for a mission.
func (s *NotificationStore) ListByMission(ctx context.Context, missionID string) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, candidate_id, mission_id, score, distance_km, urgency, status, created_at, responded_at
		FROM notifications WHERE mission_id = $1 ORDER BY score DESC, candidate_id`, missionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var responded sql.NullTime
		if err := rows.Scan(&n.ID, &n.CandidateID, &n.MissionID, &n.Score, &n.DistanceKm, &n.Urgency, &n.Status, &n.CreatedAt, &responded); err != nil {
			return nil, err
		}
		if responded.Valid {
			n.RespondedAt = &responded.Time
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
