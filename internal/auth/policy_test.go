package auth

import (
	"errors"
	"testing"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAdminHasAllCapabilities(t *testing.T) {
	resources := []Resource{
		ResourceBookings, ResourceInspections, ResourceSurveillance,
		ResourceFarms, ResourceUsers, ResourceReports, ResourceAnalytics,
	}
	actions := []Action{ActionCreate, ActionRead, ActionUpdate, ActionManage}

	for _, res := range resources {
		for _, act := range actions {
			assert.True(t, CanAccess(models.RoleAdmin, res, act),
				"admin should be allowed %s on %s", act, res)
		}
	}
}

func TestInspectorCanCreateAndReadInspections(t *testing.T) {
	assert.True(t, CanAccess(models.RoleInspector, ResourceInspections, ActionCreate))
	assert.True(t, CanAccess(models.RoleInspector, ResourceInspections, ActionRead))
	assert.True(t, CanAccess(models.RoleInspector, ResourceSurveillance, ActionCreate))
}

func TestStaffCannotManageUsersOrBookings(t *testing.T) {
	for _, role := range []models.Role{models.RoleInspector, models.RoleSupervisor, models.RoleLabTechnician} {
		assert.False(t, CanAccess(role, ResourceUsers, ActionManage), "%s must not manage users", role)
		assert.False(t, CanAccess(role, ResourceUsers, ActionRead), "%s must not read users", role)
		assert.False(t, CanAccess(role, ResourceBookings, ActionManage), "%s must not manage bookings", role)
		assert.False(t, CanAccess(role, ResourceAnalytics, ActionRead), "%s must not read analytics", role)
	}
}

func TestPublicCanOnlyCreateBookings(t *testing.T) {
	assert.True(t, CanAccess(models.RolePublic, ResourceBookings, ActionCreate))

	assert.False(t, CanAccess(models.RolePublic, ResourceBookings, ActionRead))
	assert.False(t, CanAccess(models.RolePublic, ResourceInspections, ActionCreate))
	assert.False(t, CanAccess(models.RolePublic, ResourceUsers, ActionRead))
}

func TestRequireReturnsAccessDenied(t *testing.T) {
	err := Require(models.PublicActor(), ResourceUsers, ActionRead)

	var denied *models.AccessDenied
	assert.True(t, errors.As(err, &denied))
	assert.Equal(t, "access denied", err.Error())
}
