// internal/matching/ranking.go
package matching

import (
	"sort"

	"medimatch-workers/internal/models"
)

// Rank filters scored candidates against the mission threshold, orders them
// and truncates to the mission's candidate cap. An empty result is a normal
// outcome, not an error.
//
// Tie-break order on equal scores: higher confidence, then shorter distance,
// then candidate id ascending, so the shortlist is fully deterministic.
func Rank(m *models.Mission, breakdowns []models.ScoreBreakdown) []models.MatchResult {
	threshold := m.Threshold()

	eligible := make([]models.ScoreBreakdown, 0, len(breakdowns))
	for _, b := range breakdowns {
		if b.Eligible && b.TotalScore >= threshold {
			eligible = append(eligible, b)
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		return a.CandidateID < b.CandidateID
	})

	if len(eligible) > m.MaxCandidates {
		eligible = eligible[:m.MaxCandidates]
	}

	results := make([]models.MatchResult, len(eligible))
	for i, b := range eligible {
		results[i] = models.MatchResult{
			CandidateID: b.CandidateID,
			Rank:        i + 1,
			Breakdown:   b,
			Selected:    true,
		}
	}
	return results
}
