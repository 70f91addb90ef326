package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bpdb/power-portal/internal/auth"
	"github.com/bpdb/power-portal/internal/config"
	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/roles"
	apperrors "github.com/bpdb/power-portal/pkg/util"
)

// ProfileCacheWriter keeps the per-request profile cache in line with the
// store.
type ProfileCacheWriter interface {
	Remember(ctx context.Context, profile *domain.Profile)
	Forget(ctx context.Context, profileID string)
}

// SignInRecorder counts sign-ins by the tier they were routed to.
type SignInRecorder interface {
	RecordSignIn(tier string)
}

// RegisterInput carries sign-up fields.
type RegisterInput struct {
	FullName       string
	Email          string
	Password       string
	Phone          *string
	Role           roles.Role
	Department     domain.Department
	HierarchyLevel int
	EmployeeID     *string
	FacilityID     *string
	FacilityType   *string
}

// Session is the outcome of a successful sign-in.
type Session struct {
	Profile    *domain.Profile
	Token      string
	ExpiresAt  time.Time
	Redirect   string
	Navigation *roles.Navigation
}

// AuthService coordinates registration, sign-in and password flows.
type AuthService struct {
	profiles   repository.ProfileRepository
	resets     repository.PasswordResetRepository
	cache      ProfileCacheWriter
	tokenMgr   *auth.TokenManager
	signIns    SignInRecorder
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
	now        func() time.Time
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	ProfileRepo       repository.ProfileRepository
	PasswordResetRepo repository.PasswordResetRepository
	Cache             ProfileCacheWriter
	SignIns           SignInRecorder
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		profiles:   deps.ProfileRepo,
		resets:     deps.PasswordResetRepo,
		cache:      deps.Cache,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		signIns:    deps.SignIns,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		now:        time.Now,
	}
}

// Register creates a customer account. Staff roles are granted only through
// user management.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.Profile, error) {
	email := normalizeEmail(in.Email)
	if in.Role == "" {
		in.Role = roles.RoleCustomer
	}
	if in.Role != roles.RoleCustomer {
		return nil, apperrors.NewForbidden("staff roles are assigned through user management")
	}
	if in.Department == "" {
		in.Department = domain.DeptCustomerServices
	}
	if in.HierarchyLevel == 0 {
		in.HierarchyLevel = domain.MinHierarchyLevel
	}
	if details := validateAssignment(in.Role, in.Department, in.HierarchyLevel); len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid registration", details)
	}

	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := s.hashPassword(in.Password, "password")
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		Email:          email,
		FullName:       strings.TrimSpace(in.FullName),
		Phone:          in.Phone,
		Role:           in.Role,
		Department:     in.Department,
		HierarchyLevel: in.HierarchyLevel,
		EmployeeID:     in.EmployeeID,
		FacilityID:     in.FacilityID,
		FacilityType:   in.FacilityType,
		IsActive:       true,
		PasswordHash:   hash,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("profile registered",
		zap.String("profile_id", profile.ID),
		zap.String("role", string(profile.Role)))
	return profile, nil
}

// Login verifies credentials and then resolves the landing dashboard from
// the role on the profile row just read.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	profile, err := s.profiles.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(profile.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !profile.IsActive {
		return nil, apperrors.NewForbidden("profile is deactivated")
	}

	token, exp, err := s.tokenMgr.GenerateToken(profile)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	// The redirect, the cached principal and the sidebar all derive from
	// this one read of the role.
	nav := roles.Navigate(string(profile.Role))
	if s.cache != nil {
		s.cache.Remember(ctx, profile)
	}
	s.recordSignIn(string(nav.Classification.Tier))
	return &Session{
		Profile:    profile,
		Token:      token,
		ExpiresAt:  exp,
		Redirect:   nav.Target.Path,
		Navigation: &nav,
	}, nil
}

// RequestPasswordReset issues a reset token. Unknown emails return a nil
// token and no error so responses do not reveal which accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	profile, err := s.profiles.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.MapError(err)
	}

	token := &repository.PasswordResetToken{
		ProfileID: profile.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, apperrors.MapError(err)
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("invalid reset token", nil)
		}
		return apperrors.MapError(err)
	}
	if !token.Usable(s.now()) {
		return apperrors.NewValidationError("reset token expired or used", nil)
	}

	profile, err := s.profiles.GetByID(ctx, token.ProfileID)
	if err != nil {
		return apperrors.MapError(err)
	}
	hash, err := s.hashPassword(newPassword, "new_password")
	if err != nil {
		return err
	}
	profile.PasswordHash = hash
	if err := s.profiles.Update(ctx, profile); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.resets.MarkUsed(ctx, token.ID); err != nil {
		return apperrors.MapError(err)
	}
	s.forget(ctx, profile.ID)
	return nil
}

// ChangePassword verifies current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, profileID, currentPassword, newPassword string) error {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(profile.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := s.hashPassword(newPassword, "new_password")
	if err != nil {
		return err
	}
	profile.PasswordHash = hash
	if err := s.profiles.Update(ctx, profile); err != nil {
		return apperrors.MapError(err)
	}
	s.forget(ctx, profile.ID)
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// hashPassword reports length violations as validation errors on field.
func (s *AuthService) hashPassword(password, field string) (string, error) {
	if err := auth.CheckPasswordLength(password); err != nil {
		return "", apperrors.NewValidationError("invalid password", map[string]any{field: err.Error()})
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

func (s *AuthService) forget(ctx context.Context, profileID string) {
	if s.cache != nil {
		s.cache.Forget(ctx, profileID)
	}
}

func (s *AuthService) recordSignIn(tier string) {
	if s.signIns != nil {
		s.signIns.RecordSignIn(tier)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateAssignment checks the organizational fields shared by sign-up and
// profile administration.
func validateAssignment(role roles.Role, dept domain.Department, level int) map[string]any {
	details := map[string]any{}
	if !role.Valid() {
		details["role"] = "unknown role"
	}
	if !dept.Valid() {
		details["department"] = "unknown department"
	}
	if level < domain.MinHierarchyLevel || level > domain.MaxHierarchyLevel {
		details["hierarchy_level"] = "must be between 1 and 10"
	}
	return details
}
