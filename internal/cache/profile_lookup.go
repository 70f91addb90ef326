package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/bpdb/power-portal/internal/domain"
)

// ProfileSource is the authoritative profile store.
type ProfileSource interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

// ProfileLookup reads profiles through the cache for per-request
// authentication. Cache failures are logged and never fail the lookup.
type ProfileLookup struct {
	cache  ProfileCache
	source ProfileSource
	logger *zap.Logger
}

// NewProfileLookup wires a lookup. A nil cache reads straight from source.
func NewProfileLookup(cache ProfileCache, source ProfileSource, logger *zap.Logger) *ProfileLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileLookup{cache: cache, source: source, logger: logger}
}

// GetByID returns the profile for id, from the cache when present.
func (l *ProfileLookup) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if l.cache != nil {
		profile, ok, err := l.cache.Get(ctx, id)
		if err != nil {
			l.logger.Warn("profile cache read failed", zap.String("profile_id", id), zap.Error(err))
		} else if ok {
			return profile, nil
		}
	}

	profile, err := l.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Remember(ctx, profile)
	return profile, nil
}

// Remember overwrites the cached copy with profile, which the caller has just
// read from the store.
func (l *ProfileLookup) Remember(ctx context.Context, profile *domain.Profile) {
	if l.cache == nil || profile == nil {
		return
	}
	if err := l.cache.Set(ctx, profile); err != nil {
		l.logger.Warn("profile cache write failed", zap.String("profile_id", profile.ID), zap.Error(err))
	}
}

// Forget drops the cached copy for id.
func (l *ProfileLookup) Forget(ctx context.Context, id string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx, id); err != nil {
		l.logger.Warn("profile cache invalidate failed", zap.String("profile_id", id), zap.Error(err))
	}
}
