// internal/matching/criteria_test.go
package matching

import (
	"testing"

	"medimatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

var testAdjacency = Adjacency{
	"icu":        {"emergency", "anesthesia"},
	"pediatrics": {"neonatal"},
}

func TestScoreSpecialization(t *testing.T) {
	mission := &models.Mission{Specialization: "icu"}

	tests := []struct {
		name           string
		specs          []string
		expectedPoints int
		applicable     bool
	}{
		{name: "exact match", specs: []string{"icu"}, expectedPoints: 30, applicable: true},
		{name: "exact match among several", specs: []string{"geriatrics", "icu"}, expectedPoints: 30, applicable: true},
		{name: "related specialization", specs: []string{"emergency"}, expectedPoints: 15, applicable: true},
		{name: "unrelated specialization", specs: []string{"geriatrics"}, expectedPoints: 0, applicable: true},
		{name: "no declared specialization", specs: nil, expectedPoints: 0, applicable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &models.CandidateProfile{ID: "c1", Specializations: tt.specs}
			score := scoreSpecialization(mission, c, testAdjacency)

			assert.Equal(t, CriterionSpecialization, score.Criterion)
			assert.Equal(t, tt.expectedPoints, score.Points)
			assert.Equal(t, tt.applicable, score.Applicable)
		})
	}
}

func TestScoreExperience(t *testing.T) {
	tests := []struct {
		name           string
		minYears       int
		yearsHeld      int
		expectedPoints int
	}{
		{name: "double the minimum", minYears: 3, yearsHeld: 6, expectedPoints: 25},
		{name: "far above the minimum", minYears: 2, yearsHeld: 10, expectedPoints: 25},
		{name: "exactly the minimum", minYears: 4, yearsHeld: 4, expectedPoints: 10},
		{name: "halfway to double", minYears: 4, yearsHeld: 6, expectedPoints: 18},
		{name: "below the minimum", minYears: 5, yearsHeld: 2, expectedPoints: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &models.Mission{MinExperienceYears: tt.minYears}
			c := &models.CandidateProfile{ID: "c1", ExperienceYears: tt.yearsHeld}
			score := scoreExperience(m, c)

			assert.Equal(t, tt.expectedPoints, score.Points)
			assert.True(t, score.Applicable)
		})
	}
}

func TestScoreDistance(t *testing.T) {
	tests := []struct {
		name           string
		distanceKm     float64
		expectedPoints int
	}{
		{name: "next door", distanceKm: 1.2, expectedPoints: 15},
		{name: "band boundary at 5", distanceKm: 5, expectedPoints: 15},
		{name: "inside 15", distanceKm: 10, expectedPoints: 12},
		{name: "inside 30", distanceKm: 22, expectedPoints: 8},
		{name: "inside 50", distanceKm: 45, expectedPoints: 4},
		{name: "beyond 50", distanceKm: 80, expectedPoints: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scoreDistance(tt.distanceKm)
			assert.Equal(t, tt.expectedPoints, score.Points)
			assert.True(t, score.Applicable)
		})
	}
}

func TestScoreCertifications(t *testing.T) {
	mission := &models.Mission{RequiredCertifications: []string{"bls", "acls"}}

	tests := []struct {
		name           string
		held           []string
		expectedPoints int
	}{
		{name: "all required plus extras", held: []string{"bls", "acls", "pals"}, expectedPoints: 10},
		{name: "exactly the required set", held: []string{"bls", "acls"}, expectedPoints: 5},
		{name: "one missing", held: []string{"bls"}, expectedPoints: 0},
		{name: "none held", held: nil, expectedPoints: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &models.CandidateProfile{ID: "c1", Certifications: tt.held}
			score := scoreCertifications(mission, c)
			assert.Equal(t, tt.expectedPoints, score.Points)
		})
	}
}

func TestScoreRating(t *testing.T) {
	tests := []struct {
		name           string
		rating         float64
		expectedPoints int
		applicable     bool
	}{
		{name: "top rating", rating: 5, expectedPoints: 10, applicable: true},
		{name: "mid rating", rating: 3.7, expectedPoints: 7, applicable: true},
		{name: "low rating", rating: 1.2, expectedPoints: 2, applicable: true},
		{name: "unrated", rating: 0, expectedPoints: 0, applicable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scoreRating(&models.CandidateProfile{ID: "c1", Rating: tt.rating})
			assert.Equal(t, tt.expectedPoints, score.Points)
			assert.Equal(t, tt.applicable, score.Applicable)
		})
	}
}

func TestScoreSpecificCriterion(t *testing.T) {
	tests := []struct {
		name           string
		criterion      *models.SpecificCriterion
		tags           []string
		expectedPoints int
	}{
		{
			name:           "tag held, default weight",
			criterion:      &models.SpecificCriterion{Tag: "night_shift"},
			tags:           []string{"night_shift"},
			expectedPoints: 10,
		},
		{
			name:           "tag held, custom weight",
			criterion:      &models.SpecificCriterion{Tag: "night_shift", Weight: 7},
			tags:           []string{"night_shift"},
			expectedPoints: 7,
		},
		{
			name:           "tag not held",
			criterion:      &models.SpecificCriterion{Tag: "night_shift"},
			tags:           []string{"weekend"},
			expectedPoints: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &models.Mission{SpecificCriterion: tt.criterion}
			c := &models.CandidateProfile{ID: "c1", Tags: tt.tags}
			score := scoreSpecificCriterion(m, c)
			assert.Equal(t, tt.expectedPoints, score.Points)
			assert.True(t, score.Applicable)
		})
	}
}
