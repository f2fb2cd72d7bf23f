// internal/matching/engine.go
package matching

import (
	"context"
	"time"

	"medimatch-workers/internal/common/errors"
	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/common/metrics"
	"medimatch-workers/internal/models"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// Engine computes compatibility scores for candidates against a mission.
// Scoring is pure: identical inputs always yield identical breakdowns.
type Engine struct {
	adjacency   Adjacency
	concurrency int
	logger      logger.Logger
}

// NewEngine builds an Engine. concurrency bounds the scoring worker pool;
// zero or negative selects the default.
func NewEngine(adjacency Adjacency, concurrency int, log logger.Logger) *Engine {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Engine{
		adjacency:   adjacency,
		concurrency: concurrency,
		logger:      log.WithFields(map[string]interface{}{"component": "matching-engine"}),
	}
}

// ScoreCandidate scores one candidate against one mission. Distance beyond
// the mission's maximum is a hard gate: the candidate is marked ineligible
// with a zero score and no further criteria are evaluated.
func (e *Engine) ScoreCandidate(m *models.Mission, c *models.CandidateProfile) models.ScoreBreakdown {
	distance := HaversineKm(m.Location, c.Location)

	if distance > m.MaxDistanceKm {
		return models.ScoreBreakdown{
			CandidateID: c.ID,
			TotalScore:  0,
			Criteria: []models.CriterionScore{{
				Criterion:  CriterionDistance,
				Points:     0,
				Label:      "out of range",
				Applicable: true,
			}},
			Confidence: 1,
			DistanceKm: distance,
			Eligible:   false,
		}
	}

	criteria := []models.CriterionScore{
		scoreSpecialization(m, c, e.adjacency),
		scoreExperience(m, c),
		scoreDistance(distance),
	}
	if len(m.RequiredCertifications) > 0 {
		criteria = append(criteria, scoreCertifications(m, c))
	}
	criteria = append(criteria, scoreRating(c))
	if m.SpecificCriterion != nil {
		criteria = append(criteria, scoreSpecificCriterion(m, c))
	}

	total := 0
	evaluated := 0
	for _, cs := range criteria {
		if !cs.Applicable {
			continue
		}
		total += cs.Points
		evaluated++
	}
	if total > 100 {
		total = 100
	}

	return models.ScoreBreakdown{
		CandidateID: c.ID,
		TotalScore:  total,
		Criteria:    criteria,
		Confidence:  float64(evaluated) / float64(len(criteria)),
		DistanceKm:  distance,
		Eligible:    true,
	}
}

// Score validates the inputs and scores the whole candidate pool with a
// bounded worker pool. The returned slice preserves pool order.
func (e *Engine) Score(ctx context.Context, m *models.Mission, pool []models.CandidateProfile) ([]models.ScoreBreakdown, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.NewValidationFailedError(err.Error())
	}
	for i := range pool {
		if err := pool[i].Validate(); err != nil {
			return nil, errors.NewValidationFailedError(err.Error())
		}
	}

	start := time.Now()
	results := make([]models.ScoreBreakdown, len(pool))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := range pool {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.Go(func() error {
			results[i] = e.ScoreCandidate(m, &pool[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.CandidatesScored.WithLabelValues(m.ID).Add(float64(len(pool)))
	metrics.ScoringDuration.Observe(time.Since(start).Seconds())

	e.logger.Debug("candidate pool scored", map[string]interface{}{
		"missionId":  m.ID,
		"poolSize":   len(pool),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return results, nil
}
