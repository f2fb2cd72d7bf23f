// internal/matching/criteria.go
package matching

import (
	"fmt"
	"math"

	"medimatch-workers/internal/models"
)

// Criterion names as they appear in score breakdowns.
const (
	CriterionSpecialization = "specialization"
	CriterionExperience     = "experience"
	CriterionDistance       = "distance"
	CriterionCertifications = "certifications"
	CriterionRating         = "rating"
	CriterionSpecific       = "specific_criterion"
)

// Point ceilings per criterion. They sum to 100 when every criterion applies;
// the engine caps the total at 100 regardless.
const (
	MaxSpecializationPoints = 30
	MaxExperiencePoints     = 25
	MaxDistancePoints       = 15
	MaxCertificationPoints  = 10
	MaxRatingPoints         = 10
)

// Adjacency maps a specialization to the specializations considered related
// to it. Supplied by the caller via configuration.
type Adjacency map[string][]string

// Related reports whether want and got are adjacent specializations.
func (a Adjacency) Related(want, got string) bool {
	for _, s := range a[want] {
		if s == got {
			return true
		}
	}
	return false
}

func scoreSpecialization(m *models.Mission, c *models.CandidateProfile, adjacency Adjacency) models.CriterionScore {
	if len(c.Specializations) == 0 {
		return models.CriterionScore{Criterion: CriterionSpecialization, Label: "no specialization data"}
	}
	if c.HasSpecialization(m.Specialization) {
		return models.CriterionScore{
			Criterion:  CriterionSpecialization,
			Points:     MaxSpecializationPoints,
			Label:      fmt.Sprintf("exact match on %s", m.Specialization),
			Applicable: true,
		}
	}
	for _, s := range c.Specializations {
		if adjacency.Related(m.Specialization, s) {
			return models.CriterionScore{
				Criterion:  CriterionSpecialization,
				Points:     MaxSpecializationPoints / 2,
				Label:      fmt.Sprintf("related specialization %s", s),
				Applicable: true,
			}
		}
	}
	return models.CriterionScore{
		Criterion:  CriterionSpecialization,
		Label:      "no matching specialization",
		Applicable: true,
	}
}

func scoreExperience(m *models.Mission, c *models.CandidateProfile) models.CriterionScore {
	min := m.MinExperienceYears
	exp := c.ExperienceYears

	switch {
	case exp >= min*2:
		return models.CriterionScore{
			Criterion:  CriterionExperience,
			Points:     MaxExperiencePoints,
			Label:      fmt.Sprintf("%d years, well above the %d required", exp, min),
			Applicable: true,
		}
	case exp >= min:
		// Linear from 10 points at the minimum up to 25 at twice the minimum.
		points := 10 + int(math.Round(15*float64(exp-min)/float64(min)))
		return models.CriterionScore{
			Criterion:  CriterionExperience,
			Points:     points,
			Label:      fmt.Sprintf("%d years, meets the %d required", exp, min),
			Applicable: true,
		}
	default:
		return models.CriterionScore{
			Criterion:  CriterionExperience,
			Label:      fmt.Sprintf("%d years, below the %d required", exp, min),
			Applicable: true,
		}
	}
}

// distanceBands maps an upper bound in km to awarded points.
var distanceBands = []struct {
	upToKm float64
	points int
}{
	{5, 15},
	{15, 12},
	{30, 8},
	{50, 4},
}

func scoreDistance(distanceKm float64) models.CriterionScore {
	for _, band := range distanceBands {
		if distanceKm <= band.upToKm {
			return models.CriterionScore{
				Criterion:  CriterionDistance,
				Points:     band.points,
				Label:      fmt.Sprintf("%.1f km away", distanceKm),
				Applicable: true,
			}
		}
	}
	return models.CriterionScore{
		Criterion:  CriterionDistance,
		Label:      fmt.Sprintf("%.1f km away, beyond 50 km", distanceKm),
		Applicable: true,
	}
}

func scoreCertifications(m *models.Mission, c *models.CandidateProfile) models.CriterionScore {
	for _, required := range m.RequiredCertifications {
		if !c.HasCertification(required) {
			return models.CriterionScore{
				Criterion:  CriterionCertifications,
				Label:      fmt.Sprintf("missing required certification %s", required),
				Applicable: true,
			}
		}
	}
	if len(c.Certifications) > len(m.RequiredCertifications) {
		return models.CriterionScore{
			Criterion:  CriterionCertifications,
			Points:     MaxCertificationPoints,
			Label:      "all required certifications plus extras",
			Applicable: true,
		}
	}
	return models.CriterionScore{
		Criterion:  CriterionCertifications,
		Points:     MaxCertificationPoints / 2,
		Label:      "all required certifications",
		Applicable: true,
	}
}

func scoreRating(c *models.CandidateProfile) models.CriterionScore {
	if c.Rating == 0 {
		return models.CriterionScore{Criterion: CriterionRating, Label: "not yet rated"}
	}
	points := int(math.Round(c.Rating / 5 * MaxRatingPoints))
	return models.CriterionScore{
		Criterion:  CriterionRating,
		Points:     points,
		Label:      fmt.Sprintf("rated %.1f of 5", c.Rating),
		Applicable: true,
	}
}

func scoreSpecificCriterion(m *models.Mission, c *models.CandidateProfile) models.CriterionScore {
	tag := m.SpecificCriterion.Tag
	if c.HasTag(tag) {
		return models.CriterionScore{
			Criterion:  CriterionSpecific,
			Points:     m.CriterionWeight(),
			Label:      fmt.Sprintf("satisfies %s", tag),
			Applicable: true,
		}
	}
	return models.CriterionScore{
		Criterion:  CriterionSpecific,
		Label:      fmt.Sprintf("does not satisfy %s", tag),
		Applicable: true,
	}
}
