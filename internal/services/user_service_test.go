package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository/memory"
)

func newUserFixture(t *testing.T) (*UserService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewUserService(store.Users()), store
}

func TestCreateUser_Admin(t *testing.T) {
	svc, _ := newUserFixture(t)

	user, err := svc.Create(context.Background(), adminActor, &models.CreateUserRequest{
		Email: "R.Moss@BAHFSA.gov.bs",
		Name:  "R. Moss",
		Role:  models.RoleInspector,
	})
	require.NoError(t, err)

	assert.Equal(t, "r.moss@bahfsa.gov.bs", user.Email)
	assert.True(t, user.Active)
	assert.Equal(t, models.RoleInspector, user.Role)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	req := &models.CreateUserRequest{Email: "dup@bahfsa.gov.bs", Name: "First", Role: models.RoleInspector}
	_, err := svc.Create(ctx, adminActor, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminActor, req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestCreateUser_PublicRoleRejected(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Create(context.Background(), adminActor, &models.CreateUserRequest{
		Email: "someone@bahfsa.gov.bs",
		Name:  "Someone",
		Role:  models.RolePublic,
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)
}

func TestCreateUser_NonAdminDenied(t *testing.T) {
	svc, _ := newUserFixture(t)
	supervisor := models.Actor{ID: "sup-1", Role: models.RoleSupervisor}

	_, err := svc.Create(context.Background(), supervisor, &models.CreateUserRequest{
		Email: "new@bahfsa.gov.bs",
		Name:  "New User",
		Role:  models.RoleInspector,
	})

	var denied *models.AccessDenied
	assert.ErrorAs(t, err, &denied)
}

func TestUpdateUser_RoleChange(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, adminActor, &models.CreateUserRequest{
		Email: "promote@bahfsa.gov.bs",
		Name:  "Promote Me",
		Role:  models.RoleInspector,
	})
	require.NoError(t, err)

	newRole := models.RoleSupervisor
	updated, err := svc.Update(ctx, adminActor, user.ID, &models.UpdateUserRequest{Role: &newRole})
	require.NoError(t, err)

	assert.Equal(t, models.RoleSupervisor, updated.Role)
	assert.Equal(t, user.Email, updated.Email)
}

func TestDeactivateUser_KeepsRecord(t *testing.T) {
	svc, store := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, adminActor, &models.CreateUserRequest{
		Email: "leaving@bahfsa.gov.bs",
		Name:  "Leaving Soon",
		Role:  models.RoleLabTechnician,
	})
	require.NoError(t, err)

	deactivated, err := svc.Deactivate(ctx, adminActor, user.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	kept, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, kept.Active)

	active, err := store.Users().CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, active)
}
