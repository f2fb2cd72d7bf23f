// internal/models/mission.go
package models

import "fmt"

// Urgency level of a mission.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SpecificCriterion is an establishment-defined matching tag with its weight.
// Weight 0 means "use the default weight".
type SpecificCriterion struct {
	Tag    string `json:"tag"`
	Weight int    `json:"weight,omitempty"`
}

const (
	DefaultMinScoreThreshold     = 60
	DefaultSpecificCriterionWeight = 10
)

// Mission is a staffing job posting. Immutable once a matching run starts;
// a new run takes a fresh Mission value.
type Mission struct {
	ID                     string             `json:"id"`
	Specialization         string             `json:"specialization"`
	RequiredCertifications []string           `json:"requiredCertifications,omitempty"`
	MinExperienceYears     int                `json:"minExperienceYears"`
	Location               Coordinate         `json:"location"`
	HourlyRate             float64            `json:"hourlyRate,omitempty"`
	Urgency                Urgency            `json:"urgency"`
	SpecificCriterion      *SpecificCriterion `json:"specificCriterion,omitempty"`
	MaxDistanceKm          float64            `json:"maxDistanceKm"`
	MaxCandidates          int                `json:"maxCandidates"`
	MinScoreThreshold      int                `json:"minScoreThreshold,omitempty"`
}

// Threshold returns the minimum acceptable score, applying the default when
// the establishment did not set one.
func (m *Mission) Threshold() int {
	if m.MinScoreThreshold <= 0 {
		return DefaultMinScoreThreshold
	}
	return m.MinScoreThreshold
}

// CriterionWeight returns the weight of the establishment-specific criterion.
func (m *Mission) CriterionWeight() int {
	if m.SpecificCriterion == nil {
		return 0
	}
	if m.SpecificCriterion.Weight <= 0 {
		return DefaultSpecificCriterionWeight
	}
	return m.SpecificCriterion.Weight
}

// Validate checks the mission invariants before scoring starts.
func (m *Mission) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("mission id is required")
	}
	if m.Specialization == "" {
		return fmt.Errorf("mission %s: specialization is required", m.ID)
	}
	if m.MinExperienceYears < 0 {
		return fmt.Errorf("mission %s: minimum experience must not be negative", m.ID)
	}
	if m.MaxDistanceKm <= 0 {
		return fmt.Errorf("mission %s: max distance must be positive", m.ID)
	}
	if m.MaxCandidates < 1 {
		return fmt.Errorf("mission %s: max candidates must be at least 1", m.ID)
	}
	if m.MinScoreThreshold < 0 || m.MinScoreThreshold > 100 {
		return fmt.Errorf("mission %s: score threshold must be within [0,100]", m.ID)
	}
	switch m.Urgency {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, "":
	default:
		return fmt.Errorf("mission %s: unknown urgency %q", m.ID, m.Urgency)
	}
	if err := m.Location.Validate(); err != nil {
		return fmt.Errorf("mission %s: %w", m.ID, err)
	}
	return nil
}

// Validate rejects coordinates outside the valid WGS84 ranges.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90,90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180,180]", c.Longitude)
	}
	return nil
}
