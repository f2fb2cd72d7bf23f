// internal/models/candidate.go
package models

import "fmt"

// CandidateProfile is a nurse profile as supplied by the profile store.
// The matching engine only reads it.
type CandidateProfile struct {
	ID              string     `json:"id"`
	Specializations []string   `json:"specializations,omitempty"`
	Certifications  []string   `json:"certifications,omitempty"`
	ExperienceYears int        `json:"experienceYears"`
	Location        Coordinate `json:"location"`
	Rating          float64    `json:"rating"` // 0 means unrated
	Tags            []string   `json:"tags,omitempty"`
}

// HasSpecialization reports whether the candidate declares the given specialization.
func (c *CandidateProfile) HasSpecialization(spec string) bool {
	for _, s := range c.Specializations {
		if s == spec {
			return true
		}
	}
	return false
}

// HasCertification reports whether the candidate holds the given certification.
func (c *CandidateProfile) HasCertification(cert string) bool {
	for _, h := range c.Certifications {
		if h == cert {
			return true
		}
	}
	return false
}

// HasTag reports whether the candidate carries an establishment-criterion tag.
func (c *CandidateProfile) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate checks the profile fields the engine depends on.
func (c *CandidateProfile) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("candidate id is required")
	}
	if c.ExperienceYears < 0 {
		return fmt.Errorf("candidate %s: experience must not be negative", c.ID)
	}
	if c.Rating < 0 || c.Rating > 5 {
		return fmt.Errorf("candidate %s: rating %.1f out of range [0,5]", c.ID, c.Rating)
	}
	if err := c.Location.Validate(); err != nil {
		return fmt.Errorf("candidate %s: %w", c.ID, err)
	}
	return nil
}
