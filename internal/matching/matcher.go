// internal/matching/matcher.go
package matching

import (
	"context"

	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/dispatch"
	"medimatch-workers/internal/models"
)

// Matcher is the primary entry point: score a candidate pool, build the
// shortlist, and dispatch notifications to it.
type Matcher struct {
	engine     *Engine
	dispatcher *dispatch.Dispatcher
	logger     logger.Logger
}

// MatchOutput pairs the shortlist with the per-candidate dispatch outcomes.
type MatchOutput struct {
	Results  []models.MatchResult     `json:"results"`
	Outcomes []models.DispatchOutcome `json:"notifications"`
}

func NewMatcher(engine *Engine, dispatcher *dispatch.Dispatcher, log logger.Logger) *Matcher {
	return &Matcher{
		engine:     engine,
		dispatcher: dispatcher,
		logger:     log.WithFields(map[string]interface{}{"component": "matcher"}),
	}
}

// Score exposes pool scoring on its own, without ranking or dispatch.
func (m *Matcher) Score(ctx context.Context, mission *models.Mission, pool []models.CandidateProfile) ([]models.ScoreBreakdown, error) {
	return m.engine.Score(ctx, mission, pool)
}

// MatchAndDispatch scores the pool, ranks it against the mission's threshold
// and cap, and notifies the shortlist. An empty shortlist is a normal
// outcome: the output carries zero results and no error.
func (m *Matcher) MatchAndDispatch(ctx context.Context, mission *models.Mission, pool []models.CandidateProfile) (*MatchOutput, error) {
	breakdowns, err := m.engine.Score(ctx, mission, pool)
	if err != nil {
		return nil, err
	}

	results := Rank(mission, breakdowns)
	if len(results) == 0 {
		m.logger.Info("no eligible candidates", map[string]interface{}{
			"missionId": mission.ID,
			"poolSize":  len(pool),
			"threshold": mission.Threshold(),
		})
		return &MatchOutput{Results: []models.MatchResult{}, Outcomes: []models.DispatchOutcome{}}, nil
	}

	outcomes, err := m.dispatcher.Dispatch(ctx, mission, results)
	if err != nil {
		// Cancellation mid-run: outcomes reflect what was dispatched.
		return &MatchOutput{Results: results, Outcomes: outcomes}, err
	}

	m.logger.Info("mission matched and dispatched", map[string]interface{}{
		"missionId":   mission.ID,
		"poolSize":    len(pool),
		"shortlisted": len(results),
	})
	return &MatchOutput{Results: results, Outcomes: outcomes}, nil
}
