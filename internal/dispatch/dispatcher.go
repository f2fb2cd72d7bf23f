// internal/dispatch/dispatcher.go
package dispatch

import (
	"context"
	"sync"
	"time"

	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/common/metrics"
	"medimatch-workers/internal/models"
	"medimatch-workers/internal/transport"

	"github.com/google/uuid"
)

// NotificationCreator persists new notifications. Create must enforce the
// at-most-one invariant per (candidate, mission): it returns created=false
// when a notification for that pair already exists, without error.
type NotificationCreator interface {
	Create(ctx context.Context, n *models.Notification) (created bool, err error)
}

// Dispatcher fans out notifications to shortlisted candidates. Notification
// creation is the durable step; delivery is best effort and a transport
// failure never rolls the record back nor stops the other candidates.
type Dispatcher struct {
	store     NotificationCreator
	transport transport.PushTransport
	logger    logger.Logger
	now       func() time.Time
}

func NewDispatcher(store NotificationCreator, push transport.PushTransport, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		store:     store,
		transport: push,
		logger:    log.WithFields(map[string]interface{}{"component": "dispatcher"}),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Dispatch processes each shortlisted candidate independently and in
// parallel. Cancellation is honored between candidates: creation of a single
// notification is atomic, and notifications already created are kept.
// Outcomes are returned in shortlist order.
func (d *Dispatcher) Dispatch(ctx context.Context, mission *models.Mission, results []models.MatchResult) ([]models.DispatchOutcome, error) {
	outcomes := make([]models.DispatchOutcome, len(results))

	var wg sync.WaitGroup
	cancelled := false
	for i := range results {
		if err := ctx.Err(); err != nil {
			// Stop launching new candidates; in-flight ones finish on their own.
			for j := i; j < len(results); j++ {
				outcomes[j] = models.DispatchOutcome{
					CandidateID: results[j].CandidateID,
					Status:      models.DispatchSkipped,
					Error:       err.Error(),
				}
			}
			cancelled = true
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = d.dispatchOne(ctx, mission, &results[i])
		}()
	}
	wg.Wait()

	for _, o := range outcomes {
		metrics.DispatchOutcomes.WithLabelValues(o.Status).Inc()
	}

	if cancelled {
		return outcomes, ctx.Err()
	}
	return outcomes, nil
}

func (d *Dispatcher) dispatchOne(ctx context.Context, mission *models.Mission, result *models.MatchResult) models.DispatchOutcome {
	notification := &models.Notification{
		ID:          uuid.New().String(),
		CandidateID: result.CandidateID,
		MissionID:   mission.ID,
		Score:       result.Breakdown.TotalScore,
		DistanceKm:  result.Breakdown.DistanceKm,
		Urgency:     mission.Urgency,
		Status:      models.NotificationNew,
		CreatedAt:   d.now(),
	}

	created, err := d.store.Create(ctx, notification)
	if err != nil {
		d.logger.Error("notification create failed", map[string]interface{}{
			"candidateId": result.CandidateID,
			"missionId":   mission.ID,
			"error":       err,
		})
		return models.DispatchOutcome{
			CandidateID: result.CandidateID,
			Status:      models.DispatchFailed,
			Error:       err.Error(),
		}
	}
	if !created {
		// Already notified for this mission, e.g. a retried dispatch run.
		d.logger.Info("duplicate notification skipped", map[string]interface{}{
			"candidateId": result.CandidateID,
			"missionId":   mission.ID,
		})
		return models.DispatchOutcome{
			CandidateID: result.CandidateID,
			Status:      models.DispatchSkipped,
		}
	}
	metrics.NotificationsCreated.Inc()

	payload := transport.Payload{
		NotificationID: notification.ID,
		MissionID:      mission.ID,
		Score:          notification.Score,
		DistanceKm:     notification.DistanceKm,
		Urgency:        string(mission.Urgency),
	}
	if err := d.transport.Send(ctx, result.CandidateID, payload); err != nil {
		// The notification record stays; a later out-of-band re-send
		// can recover delivery.
		d.logger.Warn("push delivery failed", map[string]interface{}{
			"candidateId":    result.CandidateID,
			"notificationId": notification.ID,
			"error":          err,
		})
		return models.DispatchOutcome{
			CandidateID:    result.CandidateID,
			NotificationID: notification.ID,
			Status:         models.DispatchFailed,
			Error:          err.Error(),
		}
	}

	return models.DispatchOutcome{
		CandidateID:    result.CandidateID,
		NotificationID: notification.ID,
		Status:         models.DispatchDelivered,
	}
}
