// Package auth holds the role capability table. The same table backs both the
// HTTP layer and the workflow services; client-side role checks in the UI are
// advisory only.
package auth

import (
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
)

type Resource string

const (
	ResourceBookings     Resource = "bookings"
	ResourceInspections  Resource = "inspections"
	ResourceSurveillance Resource = "pest_surveillance"
	ResourceFarms        Resource = "farms"
	ResourceUsers        Resource = "users"
	ResourceReports      Resource = "reports"
	ResourceAnalytics    Resource = "analytics"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionManage Action = "manage"
)

type capability struct {
	resource Resource
	action   Action
}

// staffCapabilities is what inspector, supervisor and lab_technician share:
// creating and reading field records. Booking assignment, user management and
// analytics stay admin-only.
var staffCapabilities = map[capability]bool{
	{ResourceInspections, ActionCreate}:  true,
	{ResourceInspections, ActionRead}:    true,
	{ResourceSurveillance, ActionCreate}: true,
	{ResourceSurveillance, ActionRead}:   true,
	{ResourceFarms, ActionRead}:          true,
	{ResourceReports, ActionCreate}:      true,
	{ResourceReports, ActionRead}:        true,
}

// CanAccess reports whether role may perform action on resource. Admin holds
// every capability; public submitters may only create bookings.
func CanAccess(role models.Role, resource Resource, action Action) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleInspector, models.RoleSupervisor, models.RoleLabTechnician:
		return staffCapabilities[capability{resource, action}]
	case models.RolePublic:
		return resource == ResourceBookings && action == ActionCreate
	}
	return false
}

// Require returns AccessDenied unless the actor holds the capability. Every
// workflow entry point calls this before touching state.
func Require(actor models.Actor, resource Resource, action Action) error {
	if !CanAccess(actor.Role, resource, action) {
		return &models.AccessDenied{Role: actor.Role, Resource: string(resource), Action: string(action)}
	}
	return nil
}
