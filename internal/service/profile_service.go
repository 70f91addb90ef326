package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/events"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/roles"
	apperrors "github.com/bpdb/power-portal/pkg/util"
)

// ProfileUpdate carries administrative changes. Nil pointers are left alone.
type ProfileUpdate struct {
	FullName       *string
	Phone          *string
	Role           *roles.Role
	Department     *domain.Department
	HierarchyLevel *int
	IsActive       *bool
}

// ProfileService backs the user management screen.
type ProfileService struct {
	profiles   repository.ProfileRepository
	cache      ProfileCacheWriter
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProfileService creates the service.
func NewProfileService(profiles repository.ProfileRepository, cache ProfileCacheWriter, dispatcher events.Dispatcher, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{profiles: profiles, cache: cache, dispatcher: dispatcher, logger: logger}
}

// List returns profiles matching filter.
func (s *ProfileService) List(ctx context.Context, filter repository.ProfileFilter) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx, filter)
	return profiles, apperrors.MapError(err)
}

// Get fetches one profile.
func (s *ProfileService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "profile", id)
	}
	return profile, nil
}

// Update applies an administrative change and drops the cached profile so
// the next request authenticates against the stored row.
func (s *ProfileService) Update(ctx context.Context, actor *domain.Profile, id string, in ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != nil && actor.ID == id && in.IsActive != nil && !*in.IsActive {
		return nil, apperrors.NewForbidden("cannot deactivate your own profile")
	}

	oldRole := profile.Role
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, apperrors.NewValidationError("full_name must not be blank", nil)
		}
		profile.FullName = name
	}
	if in.Phone != nil {
		profile.Phone = in.Phone
	}
	if in.Role != nil {
		profile.Role = *in.Role
	}
	if in.Department != nil {
		profile.Department = *in.Department
	}
	if in.HierarchyLevel != nil {
		profile.HierarchyLevel = *in.HierarchyLevel
	}
	if in.IsActive != nil {
		profile.IsActive = *in.IsActive
	}
	// Only changed fields are checked so legacy rows stay editable.
	details := validateAssignment(profile.Role, profile.Department, profile.HierarchyLevel)
	if in.Role == nil {
		delete(details, "role")
	}
	if in.Department == nil {
		delete(details, "department")
	}
	if in.HierarchyLevel == nil {
		delete(details, "hierarchy_level")
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid profile", details)
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, notFoundOr(err, "profile", id)
	}
	if s.cache != nil {
		s.cache.Forget(ctx, profile.ID)
	}

	if profile.Role != oldRole {
		redirect := roles.Resolve(profile.Classification())
		s.logger.Info("profile role changed",
			zap.String("profile_id", profile.ID),
			zap.String("old_role", string(oldRole)),
			zap.String("new_role", string(profile.Role)),
			zap.String("redirect", redirect))
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:      events.EventProfileRoleChanged,
			SubjectID: profile.ID,
			Actor:     events.ActorFor(actor),
			Payload: events.ProfileRoleChangedPayload{
				OldRole:  oldRole,
				NewRole:  profile.Role,
				Redirect: redirect,
			},
		})
	}
	return profile, nil
}
