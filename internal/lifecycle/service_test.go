// internal/lifecycle/service_test.go
package lifecycle

import (
	"context"
	"testing"
	"time"

	apperrors "medimatch-workers/internal/common/errors"
	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/models"
	"medimatch-workers/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	store := memory.New()
	svc := NewService(store, store.Applications(), logger.NewTestLogger(t))
	return svc, store
}

func seedNotification(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	created, err := store.Create(context.Background(), &models.Notification{
		ID:          id,
		CandidateID: "cand-1",
		MissionID:   "mission-1",
		Score:       85,
		DistanceKm:  4.2,
		Urgency:     models.UrgencyHigh,
		Status:      models.NotificationNew,
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	require.True(t, created)
}

func TestRecordResponse_Viewed(t *testing.T) {
	svc, store := newTestService(t)
	seedNotification(t, store, "notif-1")

	n, err := svc.RecordResponse(context.Background(), "notif-1", models.NotificationViewed)

	require.NoError(t, err)
	assert.Equal(t, models.NotificationViewed, n.Status)
	assert.Nil(t, n.RespondedAt)
}

func TestRecordResponse_AppliedCreatesApplication(t *testing.T) {
	svc, store := newTestService(t)
	seedNotification(t, store, "notif-1")

	n, err := svc.RecordResponse(context.Background(), "notif-1", models.NotificationApplied)

	require.NoError(t, err)
	assert.Equal(t, models.NotificationApplied, n.Status)
	require.NotNil(t, n.RespondedAt)

	apps, err := store.ListApplicationsByMission(context.Background(), "mission-1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, models.ApplicationPending, apps[0].Status)
	assert.Equal(t, "cand-1", apps[0].CandidateID)
	assert.NotEmpty(t, apps[0].ID)
}

func TestRecordResponse_DeclinedIsTerminal(t *testing.T) {
	svc, store := newTestService(t)
	seedNotification(t, store, "notif-1")

	_, err := svc.RecordResponse(context.Background(), "notif-1", models.NotificationDeclined)
	require.NoError(t, err)

	// A later apply on the declined notification is rejected and the stored
	// status does not move.
	_, err = svc.RecordResponse(context.Background(), "notif-1", models.NotificationApplied)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidTransition))

	n, err := store.GetByID(context.Background(), "notif-1")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationDeclined, n.Status)

	apps, err := store.ListApplicationsByMission(context.Background(), "mission-1")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestRecordResponse_ViewedThenApplied(t *testing.T) {
	svc, store := newTestService(t)
	seedNotification(t, store, "notif-1")

	_, err := svc.RecordResponse(context.Background(), "notif-1", models.NotificationViewed)
	require.NoError(t, err)

	n, err := svc.RecordResponse(context.Background(), "notif-1", models.NotificationApplied)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationApplied, n.Status)
	require.NotNil(t, n.RespondedAt)
}

func TestRecordResponse_UnknownNotification(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecordResponse(context.Background(), "missing", models.NotificationViewed)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotificationNotFound))
}

func TestDecideApplication(t *testing.T) {
	svc, store := newTestService(t)
	seedNotification(t, store, "notif-1")

	_, err := svc.RecordResponse(context.Background(), "notif-1", models.NotificationApplied)
	require.NoError(t, err)
	apps, err := store.ListApplicationsByMission(context.Background(), "mission-1")
	require.NoError(t, err)
	require.Len(t, apps, 1)

	app, err := svc.DecideApplication(context.Background(), apps[0].ID, models.ApplicationAccepted, "see you monday")

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, app.Status)
	assert.Equal(t, "see you monday", app.Feedback)
}

func TestDecideApplication_AlreadyDecided(t *testing.T) {
	svc, store := newTestService(t)
	seedNotification(t, store, "notif-1")

	_, err := svc.RecordResponse(context.Background(), "notif-1", models.NotificationApplied)
	require.NoError(t, err)
	apps, err := store.ListApplicationsByMission(context.Background(), "mission-1")
	require.NoError(t, err)
	require.Len(t, apps, 1)

	_, err = svc.DecideApplication(context.Background(), apps[0].ID, models.ApplicationRejected, "")
	require.NoError(t, err)

	_, err = svc.DecideApplication(context.Background(), apps[0].ID, models.ApplicationAccepted, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidTransition))

	app, err := store.GetApplication(context.Background(), apps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, app.Status)
}

func TestDecideApplication_Unknown(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.DecideApplication(context.Background(), "missing", models.ApplicationAccepted, "")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeApplicationNotFound))
}
