// internal/store/postgres/profiles.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"medimatch-workers/internal/models"

	"github.com/lib/pq"
)

// ProfileStore reads candidate profiles. Profiles are owned by the
// profile-management service; this store never writes them.
type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

const profileColumns = `id, specializations, certifications, tags, experience_years, latitude, longitude, rating`

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.CandidateProfile, error) {
	var p models.CandidateProfile
	err := row.Scan(
		&p.ID,
		pq.Array(&p.Specializations),
		pq.Array(&p.Certifications),
		pq.Array(&p.Tags),
		&p.ExperienceYears,
		&p.Location.Latitude,
		&p.Location.Longitude,
		&p.Rating,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id string) (*models.CandidateProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM candidate_profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("candidate profile %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListActive returns every profile open to new missions, in id order so
// repeated runs see the same pool ordering.
func (s *ProfileStore) ListActive(ctx context.Context) ([]models.CandidateProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM candidate_profiles WHERE active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CandidateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// PushEndpoint resolves the SNS platform endpoint registered for a candidate.
func (s *ProfileStore) PushEndpoint(ctx context.Context, candidateID string) (string, error) {
	var endpoint sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT push_endpoint FROM candidate_profiles WHERE id = $1`, candidateID).Scan(&endpoint)
	if err != nil {
		return "", err
	}
	if !endpoint.Valid || endpoint.String == "" {
		return "", fmt.Errorf("candidate %s has no registered device", candidateID)
	}
	return endpoint.String, nil
}

// Email resolves the candidate's email address for the SES fallback transport.
func (s *ProfileStore) Email(ctx context.Context, candidateID string) (string, error) {
	var email string
	err := s.db.QueryRowContext(ctx,
		`SELECT email FROM candidate_profiles WHERE id = $1`, candidateID).Scan(&email)
	if err != nil {
		return "", err
	}
	return email, nil
}
