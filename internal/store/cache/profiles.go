// internal/store/cache/profiles.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// ProfileReader is the read side implemented by the postgres profile store.
type ProfileReader interface {
	GetByID(ctx context.Context, id string) (*models.CandidateProfile, error)
	ListActive(ctx context.Context) ([]models.CandidateProfile, error)
}

// ProfileCache is a Redis read-through decorator over a ProfileReader.
// Cache failures degrade to the underlying store, never to an error.
type ProfileCache struct {
	inner  ProfileReader
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewProfileCache(inner ProfileReader, rdb *redis.Client, ttl time.Duration, log logger.Logger) *ProfileCache {
	return &ProfileCache{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "profile-cache"}),
	}
}

func profileKey(id string) string { return "candidate:profile:" + id }

func (c *ProfileCache) GetByID(ctx context.Context, id string) (*models.CandidateProfile, error) {
	if val, err := c.redis.Get(ctx, profileKey(id)).Result(); err == nil {
		var profile models.CandidateProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	profile, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(profile); err == nil {
		if err := c.redis.Set(ctx, profileKey(profile.ID), data, c.ttl).Err(); err != nil {
			c.logger.Warn("profile cache write failed", map[string]interface{}{
				"candidateId": profile.ID,
				"error":       err,
			})
		}
	}
	return profile, nil
}

// ListActive bypasses the per-id cache but warms it for subsequent lookups.
func (c *ProfileCache) ListActive(ctx context.Context) ([]models.CandidateProfile, error) {
	profiles, err := c.inner.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if data, err := json.Marshal(&profiles[i]); err == nil {
			c.redis.Set(ctx, profileKey(profiles[i].ID), data, c.ttl)
		}
	}
	return profiles, nil
}
