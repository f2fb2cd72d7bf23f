// internal/store/postgres/profiles_test.go
package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileColumnNames() []string {
	return []string{"id", "specializations", "certifications", "tags", "experience_years", "latitude", "longitude", "rating"}
}

func TestProfileStore_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM candidate_profiles WHERE id").
		WithArgs("cand-1").
		WillReturnRows(sqlmock.NewRows(profileColumnNames()).
			AddRow("cand-1", "{icu,emergency}", "{bls}", "{night_shift}", 6, 48.8566, 2.3522, 4.5))

	store := NewProfileStore(db)
	p, err := store.GetByID(context.Background(), "cand-1")

	require.NoError(t, err)
	assert.Equal(t, "cand-1", p.ID)
	assert.Equal(t, []string{"icu", "emergency"}, p.Specializations)
	assert.Equal(t, []string{"bls"}, p.Certifications)
	assert.Equal(t, []string{"night_shift"}, p.Tags)
	assert.Equal(t, 6, p.ExperienceYears)
	assert.Equal(t, 48.8566, p.Location.Latitude)
	assert.Equal(t, 4.5, p.Rating)
}

func TestProfileStore_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM candidate_profiles WHERE active ORDER BY id").
		WillReturnRows(sqlmock.NewRows(profileColumnNames()).
			AddRow("cand-1", "{icu}", "{}", "{}", 3, 48.85, 2.35, 0.0).
			AddRow("cand-2", "{pediatrics}", "{bls}", "{}", 8, 48.80, 2.39, 4.8))

	store := NewProfileStore(db)
	out, err := store.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "cand-1", out[0].ID)
	assert.Empty(t, out[0].Certifications)
	assert.Equal(t, "cand-2", out[1].ID)
	assert.Equal(t, 8, out[1].ExperienceYears)
}

func TestProfileStore_PushEndpoint(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT push_endpoint FROM candidate_profiles").
		WithArgs("cand-1").
		WillReturnRows(sqlmock.NewRows([]string{"push_endpoint"}).
			AddRow("arn:aws:sns:eu-west-1:123:endpoint/GCM/app/abc"))

	store := NewProfileStore(db)
	endpoint, err := store.PushEndpoint(context.Background(), "cand-1")

	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123:endpoint/GCM/app/abc", endpoint)
}

func TestProfileStore_PushEndpoint_NoDevice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT push_endpoint FROM candidate_profiles").
		WithArgs("cand-2").
		WillReturnRows(sqlmock.NewRows([]string{"push_endpoint"}).AddRow(nil))

	store := NewProfileStore(db)
	_, err = store.PushEndpoint(context.Background(), "cand-2")

	assert.Error(t, err)
}
