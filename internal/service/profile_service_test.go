package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/events"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/roles"
)

func TestProfileRoleChangeInvalidatesCache(t *testing.T) {
	admin := staffProfile(t, "sa", roles.RoleSystemAnalyst, "pw-123456")
	target := staffProfile(t, "u1", roles.RoleAsstEngElec, "pw-123456")
	repo := newFakeProfiles(admin, target)
	cache := &fakeCache{}
	d := &recordingDispatcher{}
	svc := NewProfileService(repo, cache, d, nil)

	newRole := roles.RoleEngElec
	level := 6
	updated, err := svc.Update(context.Background(), admin, "u1", ProfileUpdate{Role: &newRole, HierarchyLevel: &level})
	require.NoError(t, err)
	assert.Equal(t, roles.RoleEngElec, updated.Role)
	assert.Equal(t, []string{"u1"}, cache.forgotten)

	require.Len(t, d.published, 1)
	assert.Equal(t, events.EventProfileRoleChanged, d.published[0].Type)
	payload := d.published[0].Payload.(events.ProfileRoleChangedPayload)
	assert.Equal(t, roles.RoleAsstEngElec, payload.OldRole)
	assert.Equal(t, "/dashboard/engineer/electrical", payload.Redirect)

	stored, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, stored.HierarchyLevel)
}

func TestProfileUpdateWithoutRoleChangeStillInvalidatesCache(t *testing.T) {
	admin := staffProfile(t, "sa", roles.RoleSystemAnalyst, "pw-123456")
	target := staffProfile(t, "u1", roles.RoleHROfficer, "pw-123456")
	repo := newFakeProfiles(admin, target)
	cache := &fakeCache{}
	d := &recordingDispatcher{}
	svc := NewProfileService(repo, cache, d, nil)

	inactive := false
	same := roles.RoleHROfficer
	updated, err := svc.Update(context.Background(), admin, "u1", ProfileUpdate{IsActive: &inactive, Role: &same})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, []string{"u1"}, cache.forgotten)
	assert.Empty(t, d.published)
}

func TestProfileUpdateValidation(t *testing.T) {
	admin := staffProfile(t, "sa", roles.RoleSystemAnalyst, "pw-123456")
	legacy := staffProfile(t, "legacy", "Junior Clerk", "pw-123456")
	repo := newFakeProfiles(admin, legacy)
	svc := NewProfileService(repo, &fakeCache{}, nil, nil)
	ctx := context.Background()

	bogus := roles.Role("Wizard")
	_, err := svc.Update(ctx, admin, "legacy", ProfileUpdate{Role: &bogus})
	assertCode(t, err, "VALIDATION_FAILED")

	dept := domain.Department("NOWHERE")
	_, err = svc.Update(ctx, admin, "legacy", ProfileUpdate{Department: &dept})
	assertCode(t, err, "VALIDATION_FAILED")

	level := 0
	_, err = svc.Update(ctx, admin, "legacy", ProfileUpdate{HierarchyLevel: &level})
	assertCode(t, err, "VALIDATION_FAILED")

	name := "Renamed Clerk"
	updated, err := svc.Update(ctx, admin, "legacy", ProfileUpdate{FullName: &name})
	require.NoError(t, err, "untouched legacy role does not block other edits")
	assert.Equal(t, "Renamed Clerk", updated.FullName)

	off := false
	_, err = svc.Update(ctx, admin, "sa", ProfileUpdate{IsActive: &off})
	assertCode(t, err, "FORBIDDEN")

	_, err = svc.Update(ctx, admin, "missing", ProfileUpdate{FullName: &name})
	assertCode(t, err, "NOT_FOUND")
}

func TestProfileList(t *testing.T) {
	repo := newFakeProfiles(
		staffProfile(t, "a", roles.RoleCustomer, "pw-123456"),
		staffProfile(t, "b", roles.RoleChairman, "pw-123456"),
	)
	svc := NewProfileService(repo, nil, nil, nil)

	list, err := svc.List(context.Background(), repository.ProfileFilter{Roles: []roles.Role{roles.RoleChairman}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)
}
