package models

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleInspector     Role = "inspector"
	RoleSupervisor    Role = "supervisor"
	RoleLabTechnician Role = "lab_technician"
	// RolePublic is the resolved role for unauthenticated submitters.
	RolePublic Role = "public"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleInspector, RoleSupervisor, RoleLabTechnician:
		return true
	}
	return false
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingAssigned  BookingStatus = "assigned"
	BookingCompleted BookingStatus = "completed"
	BookingRejected  BookingStatus = "rejected"
)

// CanTransitionTo reports whether the booking lifecycle permits moving to
// target. rejected and completed are terminal.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingPending:
		return target == BookingConfirmed || target == BookingRejected
	case BookingConfirmed:
		return target == BookingAssigned
	case BookingAssigned:
		return target == BookingCompleted
	}
	return false
}

// AtOrPastAssignment reports whether the status is assigned or later in the
// lifecycle. The assigned-inspector invariant hangs off this.
func (s BookingStatus) AtOrPastAssignment() bool {
	return s == BookingAssigned || s == BookingCompleted
}

type InspectionType string

const (
	InspectionImport InspectionType = "import"
	InspectionFarm   InspectionType = "farm"
)

type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

type ImportInspectionStatus string

const (
	ImportPending    ImportInspectionStatus = "pending"
	ImportApproved   ImportInspectionStatus = "approved"
	ImportRejected   ImportInspectionStatus = "rejected"
	ImportQuarantine ImportInspectionStatus = "quarantine"
	ImportDetained   ImportInspectionStatus = "detained"
)

func (s ImportInspectionStatus) IsValid() bool {
	switch s {
	case ImportPending, ImportApproved, ImportRejected, ImportQuarantine, ImportDetained:
		return true
	}
	return false
}

type FarmInspectionStatus string

const (
	FarmInspectionPending          FarmInspectionStatus = "pending"
	FarmInspectionCompleted        FarmInspectionStatus = "completed"
	FarmInspectionFollowUpRequired FarmInspectionStatus = "follow_up_required"
	FarmInspectionNonCompliant     FarmInspectionStatus = "non_compliant"
)

type PopulationDensity string

const (
	PopulationNone   PopulationDensity = "none"
	PopulationLow    PopulationDensity = "low"
	PopulationMedium PopulationDensity = "medium"
	PopulationHigh   PopulationDensity = "high"
)

type ConditionRating string

const (
	ConditionExcellent ConditionRating = "excellent"
	ConditionGood      ConditionRating = "good"
	ConditionFair      ConditionRating = "fair"
	ConditionPoor      ConditionRating = "poor"
)

type DamageAssessment string

const (
	DamageNone     DamageAssessment = "none"
	DamageMinimal  DamageAssessment = "minimal"
	DamageModerate DamageAssessment = "moderate"
	DamageSevere   DamageAssessment = "severe"
)

type DistributionPattern string

const (
	DistributionIsolated   DistributionPattern = "isolated"
	DistributionScattered  DistributionPattern = "scattered"
	DistributionWidespread DistributionPattern = "widespread"
)

type CloudCover string

const (
	CloudClear        CloudCover = "clear"
	CloudPartlyCloudy CloudCover = "partly_cloudy"
	CloudOvercast     CloudCover = "overcast"
)

// EntityType tags audit entries and events with the collection they belong to.
type EntityType string

const (
	EntityBooking          EntityType = "booking"
	EntityImportInspection EntityType = "import_inspection"
	EntityFarmInspection   EntityType = "farm_inspection"
	EntitySurveillance     EntityType = "pest_surveillance"
	EntityUser             EntityType = "user"
	EntityFarm             EntityType = "farm"
)
