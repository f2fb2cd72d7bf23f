// internal/store/postgres/missions.go
package postgres

import (
	"context"
	"database/sql"

	apperrors "medimatch-workers/internal/common/errors"
	"medimatch-workers/internal/models"

	"github.com/lib/pq"
)

// MissionStore reads missions. Missions are created by the establishment
// service; the engine treats them as immutable input.
type MissionStore struct {
	db *sql.DB
}

func NewMissionStore(db *sql.DB) *MissionStore {
	return &MissionStore{db: db}
}

func (s *MissionStore) GetByID(ctx context.Context, id string) (*models.Mission, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, specialization, required_certifications, min_experience_years,
		       latitude, longitude, hourly_rate, urgency,
		       specific_criterion_tag, specific_criterion_weight,
		       max_distance_km, max_candidates, min_score_threshold
		FROM missions WHERE id = $1`, id)

	var m models.Mission
	var tag sql.NullString
	var weight sql.NullInt64
	err := row.Scan(
		&m.ID,
		&m.Specialization,
		pq.Array(&m.RequiredCertifications),
		&m.MinExperienceYears,
		&m.Location.Latitude,
		&m.Location.Longitude,
		&m.HourlyRate,
		&m.Urgency,
		&tag,
		&weight,
		&m.MaxDistanceKm,
		&m.MaxCandidates,
		&m.MinScoreThreshold,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewMissionNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	if tag.Valid && tag.String != "" {
		m.SpecificCriterion = &models.SpecificCriterion{Tag: tag.String}
		if weight.Valid {
			m.SpecificCriterion.Weight = int(weight.Int64)
		}
	}
	return &m, nil
}
