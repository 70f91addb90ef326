package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/roles"
)

const profileKeyPrefix = "portal:profile:"

// ProfileCache stores profile snapshots keyed by profile id. Password hashes
// are never written.
type ProfileCache interface {
	Get(ctx context.Context, profileID string) (*domain.Profile, bool, error)
	Set(ctx context.Context, profile *domain.Profile) error
	Invalidate(ctx context.Context, profileID string) error
}

type redisProfileCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisProfileCache returns a ProfileCache backed by Redis. A zero ttl
// disables writes, so every lookup falls through to the store.
func NewRedisProfileCache(client redis.Cmdable, ttl time.Duration) ProfileCache {
	return &redisProfileCache{client: client, ttl: ttl}
}

func profileKey(profileID string) string {
	return profileKeyPrefix + profileID
}

// snapshot is the cached form of a profile.
type snapshot struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	FullName       string            `json:"full_name"`
	Phone          *string           `json:"phone,omitempty"`
	Role           roles.Role        `json:"role"`
	Department     domain.Department `json:"department"`
	HierarchyLevel int               `json:"hierarchy_level"`
	EmployeeID     *string           `json:"employee_id,omitempty"`
	FacilityID     *string           `json:"facility_id,omitempty"`
	FacilityType   *string           `json:"facility_type,omitempty"`
	AvatarURL      *string           `json:"avatar_url,omitempty"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func toSnapshot(p *domain.Profile) snapshot {
	return snapshot{
		ID:             p.ID,
		Email:          p.Email,
		FullName:       p.FullName,
		Phone:          p.Phone,
		Role:           p.Role,
		Department:     p.Department,
		HierarchyLevel: p.HierarchyLevel,
		EmployeeID:     p.EmployeeID,
		FacilityID:     p.FacilityID,
		FacilityType:   p.FacilityType,
		AvatarURL:      p.AvatarURL,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (s snapshot) profile() *domain.Profile {
	return &domain.Profile{
		ID:             s.ID,
		Email:          s.Email,
		FullName:       s.FullName,
		Phone:          s.Phone,
		Role:           s.Role,
		Department:     s.Department,
		HierarchyLevel: s.HierarchyLevel,
		EmployeeID:     s.EmployeeID,
		FacilityID:     s.FacilityID,
		FacilityType:   s.FacilityType,
		AvatarURL:      s.AvatarURL,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (c *redisProfileCache) Get(ctx context.Context, profileID string) (*domain.Profile, bool, error) {
	raw, err := c.client.Get(ctx, profileKey(profileID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, err
	}
	return s.profile(), true, nil
}

func (c *redisProfileCache) Set(ctx context.Context, profile *domain.Profile) error {
	if c.ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(toSnapshot(profile))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(profile.ID), raw, c.ttl).Err()
}

func (c *redisProfileCache) Invalidate(ctx context.Context, profileID string) error {
	return c.client.Del(ctx, profileKey(profileID)).Err()
}
