// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"testing"

	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/dispatch"
	"medimatch-workers/internal/lifecycle"
	"medimatch-workers/internal/matching"
	"medimatch-workers/internal/models"
	"medimatch-workers/internal/store/memory"
	"medimatch-workers/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mad "medimatch-workers/internal/workers/matching/match-and-dispatch"
	da "medimatch-workers/internal/workers/response/decide-application"
	rr "medimatch-workers/internal/workers/response/record-response"
)

// The full mission flow against in-memory infrastructure: match and notify a
// pool, then walk one candidate through view, apply and acceptance.

var (
	hospital = models.Coordinate{Latitude: 48.8566, Longitude: 2.3522}
	nearby   = models.Coordinate{Latitude: 48.8000, Longitude: 2.3900}
	farAway  = models.Coordinate{Latitude: 45.7640, Longitude: 4.8357}
)

type staticMissions struct {
	missions map[string]*models.Mission
}

func (s *staticMissions) GetByID(ctx context.Context, id string) (*models.Mission, error) {
	return s.missions[id], nil
}

type staticPool struct {
	candidates []models.CandidateProfile
}

func (s *staticPool) CandidatesForMission(ctx context.Context, _ *models.Mission) ([]models.CandidateProfile, error) {
	return s.candidates, nil
}

func TestMissionFlow(t *testing.T) {
	log := logger.NewTestLogger(t)
	store := memory.New()

	mission := &models.Mission{
		ID:                     "mission-icu-night",
		Specialization:         "icu",
		RequiredCertifications: []string{"bls"},
		MinExperienceYears:     2,
		Location:               hospital,
		Urgency:                models.UrgencyHigh,
		SpecificCriterion:      &models.SpecificCriterion{Tag: "night_shift"},
		MaxDistanceKm:          50,
		MaxCandidates:          2,
	}

	pool := []models.CandidateProfile{
		{
			ID:              "cand-ideal",
			Specializations: []string{"icu"},
			Certifications:  []string{"bls", "acls"},
			ExperienceYears: 6,
			Location:        hospital,
			Rating:          5,
			Tags:            []string{"night_shift"},
		},
		{
			ID:              "cand-good",
			Specializations: []string{"emergency"},
			Certifications:  []string{"bls"},
			ExperienceYears: 5,
			Location:        nearby,
			Rating:          4.2,
			Tags:            []string{"night_shift"},
		},
		{
			ID:              "cand-far",
			Specializations: []string{"icu"},
			Certifications:  []string{"bls"},
			ExperienceYears: 10,
			Location:        farAway,
			Rating:          5,
		},
		{
			ID:              "cand-junior",
			ExperienceYears: 0,
			Location:        nearby,
		},
	}

	engine := matching.NewEngine(matching.Adjacency{"icu": {"emergency"}}, 4, log)
	dispatcher := dispatch.NewDispatcher(store, transport.NewLogTransport(log), log)
	matcher := matching.NewMatcher(engine, dispatcher, log)
	lifecycleSvc := lifecycle.NewService(store, store.Applications(), log)

	missions := &staticMissions{missions: map[string]*models.Mission{mission.ID: mission}}

	matchHandler := mad.NewHandler(&mad.Config{Timeout: 0}, matcher, missions, &staticPool{candidates: pool}, log)
	responseHandler := rr.NewHandler(&rr.Config{}, lifecycleSvc, log)
	decisionHandler := da.NewHandler(&da.Config{}, lifecycleSvc, log)

	ctx := context.Background()

	// 1. Match and dispatch.
	matched, err := matchHandler.Execute(ctx, &mad.Input{MissionID: mission.ID})
	require.NoError(t, err)
	require.Equal(t, 2, matched.Shortlisted)
	assert.Equal(t, "cand-ideal", matched.Results[0].CandidateID)
	assert.Equal(t, 100, matched.Results[0].Breakdown.TotalScore)
	assert.Equal(t, "cand-good", matched.Results[1].CandidateID)

	for _, o := range matched.Notifications {
		assert.Equal(t, models.DispatchDelivered, o.Status)
	}

	// A re-run after a workflow retry notifies nobody twice.
	rerun, err := matchHandler.Execute(ctx, &mad.Input{MissionID: mission.ID})
	require.NoError(t, err)
	for _, o := range rerun.Notifications {
		assert.Equal(t, models.DispatchSkipped, o.Status)
	}

	// 2. The top candidate views and applies.
	notifID := matched.Notifications[0].NotificationID
	viewed, err := responseHandler.Execute(ctx, &rr.Input{NotificationID: notifID, Response: "viewed"})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationViewed, viewed.Notification.Status)

	applied, err := responseHandler.Execute(ctx, &rr.Input{NotificationID: notifID, Response: "applied"})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationApplied, applied.Notification.Status)
	require.NotNil(t, applied.Notification.RespondedAt)

	// Applying twice is rejected outright.
	_, err = responseHandler.Execute(ctx, &rr.Input{NotificationID: notifID, Response: "applied"})
	require.Error(t, err)

	apps, err := lifecycleSvc.MissionApplications(ctx, mission.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, models.ApplicationPending, apps[0].Status)
	assert.Equal(t, "cand-ideal", apps[0].CandidateID)

	// 3. The establishment accepts.
	decided, err := decisionHandler.Execute(ctx, &da.Input{
		ApplicationID: apps[0].ID,
		Decision:      "accepted",
		Feedback:      "starts next week",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, decided.Application.Status)

	// The decision is final.
	_, err = decisionHandler.Execute(ctx, &da.Input{ApplicationID: apps[0].ID, Decision: "rejected"})
	require.Error(t, err)
}
