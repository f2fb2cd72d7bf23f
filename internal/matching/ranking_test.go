// internal/matching/ranking_test.go
package matching

import (
	"testing"

	"medimatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func breakdown(id string, score int, confidence, distance float64) models.ScoreBreakdown {
	return models.ScoreBreakdown{
		CandidateID: id,
		TotalScore:  score,
		Confidence:  confidence,
		DistanceKm:  distance,
		Eligible:    true,
	}
}

func TestRank_FiltersBelowThreshold(t *testing.T) {
	m := &models.Mission{ID: "m1", MaxCandidates: 10, MinScoreThreshold: 70}

	results := Rank(m, []models.ScoreBreakdown{
		breakdown("cand-a", 85, 1, 3),
		breakdown("cand-b", 70, 1, 3),
		breakdown("cand-c", 69, 1, 3),
	})

	require.Len(t, results, 2)
	assert.Equal(t, "cand-a", results[0].CandidateID)
	assert.Equal(t, "cand-b", results[1].CandidateID)
}

func TestRank_DefaultThreshold(t *testing.T) {
	m := &models.Mission{ID: "m1", MaxCandidates: 10}

	results := Rank(m, []models.ScoreBreakdown{
		breakdown("cand-a", 60, 1, 3),
		breakdown("cand-b", 59, 1, 3),
	})

	require.Len(t, results, 1)
	assert.Equal(t, "cand-a", results[0].CandidateID)
}

func TestRank_ExcludesIneligible(t *testing.T) {
	m := &models.Mission{ID: "m1", MaxCandidates: 10}

	outOfRange := breakdown("cand-far", 0, 1, 120)
	outOfRange.Eligible = false

	results := Rank(m, []models.ScoreBreakdown{
		outOfRange,
		breakdown("cand-near", 80, 1, 3),
	})

	require.Len(t, results, 1)
	assert.Equal(t, "cand-near", results[0].CandidateID)
}

func TestRank_TieBreaks(t *testing.T) {
	m := &models.Mission{ID: "m1", MaxCandidates: 10}

	results := Rank(m, []models.ScoreBreakdown{
		breakdown("cand-d", 80, 0.8, 2),
		breakdown("cand-c", 80, 1.0, 5),
		breakdown("cand-b", 80, 1.0, 2),
		breakdown("cand-a", 80, 1.0, 2),
		breakdown("cand-e", 90, 0.5, 40),
	})

	require.Len(t, results, 5)
	// Score first, then confidence, then distance, then id.
	assert.Equal(t, "cand-e", results[0].CandidateID)
	assert.Equal(t, "cand-a", results[1].CandidateID)
	assert.Equal(t, "cand-b", results[2].CandidateID)
	assert.Equal(t, "cand-c", results[3].CandidateID)
	assert.Equal(t, "cand-d", results[4].CandidateID)
}

func TestRank_CapsAtMaxCandidates(t *testing.T) {
	m := &models.Mission{ID: "m1", MaxCandidates: 2}

	results := Rank(m, []models.ScoreBreakdown{
		breakdown("cand-a", 95, 1, 1),
		breakdown("cand-b", 90, 1, 1),
		breakdown("cand-c", 85, 1, 1),
	})

	require.Len(t, results, 2)
	assert.Equal(t, "cand-a", results[0].CandidateID)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, "cand-b", results[1].CandidateID)
	assert.Equal(t, 2, results[1].Rank)
	for _, r := range results {
		assert.True(t, r.Selected)
	}
}

func TestRank_EmptyShortlistIsNormal(t *testing.T) {
	m := &models.Mission{ID: "m1", MaxCandidates: 5}

	results := Rank(m, []models.ScoreBreakdown{
		breakdown("cand-a", 20, 1, 3),
	})

	assert.Empty(t, results)
}
