// internal/store/elastic/profiles.go
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"medimatch-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

// ProfileSearch supplies candidate pools from an Elasticsearch index with a
// geo_distance pre-filter, so missions in dense areas do not score the whole
// national pool.
type ProfileSearch struct {
	client *elasticsearch.Client
	index  string
}

func NewProfileSearch(client *elasticsearch.Client, index string) *ProfileSearch {
	return &ProfileSearch{client: client, index: index}
}

type esProfileDoc struct {
	ID              string   `json:"id"`
	Specializations []string `json:"specializations"`
	Certifications  []string `json:"certifications"`
	Tags            []string `json:"tags"`
	ExperienceYears int      `json:"experienceYears"`
	Location        struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
	Rating float64 `json:"rating"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source esProfileDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// CandidatesForMission returns active profiles within the mission's maximum
// distance, ordered by id for reproducible pools.
func (s *ProfileSearch) CandidatesForMission(ctx context.Context, m *models.Mission) ([]models.CandidateProfile, error) {
	query := map[string]interface{}{
		"size": 500,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"active": true}},
					map[string]interface{}{
						"geo_distance": map[string]interface{}{
							"distance": fmt.Sprintf("%.0fkm", m.MaxDistanceKm),
							"location": map[string]interface{}{
								"lat": m.Location.Latitude,
								"lon": m.Location.Longitude,
							},
						},
					},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"id": map[string]interface{}{"order": "asc"}},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("profile search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("profile search error: %s", res.Status())
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	profiles := make([]models.CandidateProfile, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		doc := hit.Source
		profiles = append(profiles, models.CandidateProfile{
			ID:              doc.ID,
			Specializations: doc.Specializations,
			Certifications:  doc.Certifications,
			Tags:            doc.Tags,
			ExperienceYears: doc.ExperienceYears,
			Location: models.Coordinate{
				Latitude:  doc.Location.Lat,
				Longitude: doc.Location.Lon,
			},
			Rating: doc.Rating,
		})
	}
	return profiles, nil
}
