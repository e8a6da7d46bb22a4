package models

import "github.com/google/uuid"

// Request DTOs. Server-assigned fields (ids, reference numbers, statuses,
// scores, timestamps) never come from the caller.

type SubmitBookingRequest struct {
	// SubmissionToken is generated client-side; resubmitting the same token
	// returns the already-committed booking instead of creating a duplicate.
	SubmissionToken string         `json:"submission_token"`
	Contact         ContactInfo    `json:"contact"`
	InspectionType  InspectionType `json:"inspection_type"`
	PreferredDate   string         `json:"preferred_date"`
	PreferredTime   string         `json:"preferred_time"`
	AlternativeDate *string        `json:"alternative_date,omitempty"`
	AlternativeTime *string        `json:"alternative_time,omitempty"`
	Urgency         Urgency        `json:"urgency"`
	ImportDetails   *ImportRequest `json:"import_details,omitempty"`
	FarmDetails     *FarmRequest   `json:"farm_details,omitempty"`
	SpecialRequests *string        `json:"special_requirements,omitempty"`
	Notes           *string        `json:"additional_notes,omitempty"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

type AssignBookingRequest struct {
	InspectorID uuid.UUID `json:"inspector_id"`
}

type CompleteBookingRequest struct {
	InspectionRef string `json:"inspection_ref"`
}

type CreateImportInspectionRequest struct {
	BookingID      *uuid.UUID             `json:"booking_id,omitempty"`
	InspectorID    uuid.UUID              `json:"inspector_id"`
	InspectionDate string                 `json:"inspection_date"`
	InspectionTime string                 `json:"inspection_time"`
	Location       string                 `json:"location"`
	GPSCoordinates *GPSCoordinates        `json:"gps_coordinates,omitempty"`
	Consignment    ConsignmentDetails     `json:"consignment_details"`
	Commodities    []Commodity            `json:"commodities"`
	Compliance     ImportComplianceChecks `json:"compliance_checks"`
	Actions        PhytosanitaryActions   `json:"phytosanitary_actions"`
	Notes          *string                `json:"notes,omitempty"`
}

type OverrideImportStatusRequest struct {
	Status ImportInspectionStatus `json:"status"`
	Note   string                 `json:"note"`
}

type CreateFarmInspectionRequest struct {
	BookingID       *uuid.UUID              `json:"booking_id,omitempty"`
	FarmID          uuid.UUID               `json:"farm_id"`
	InspectorID     uuid.UUID               `json:"inspector_id"`
	InspectionDate  string                  `json:"inspection_date"`
	InspectionTime  string                  `json:"inspection_time"`
	CropTypes       []string                `json:"crop_types"`
	Sanitation      SanitationChecklist     `json:"sanitation"`
	PestPresence    PestPresenceChecklist   `json:"pest_presence"`
	Compliance      ComplianceChecklist     `json:"compliance"`
	SoilHealth      SoilHealthChecklist     `json:"soil_health"`
	Infrastructure  InfrastructureChecklist `json:"infrastructure"`
	GPSCoordinates  *GPSCoordinates         `json:"gps_coordinates,omitempty"`
	Recommendations *string                 `json:"recommendations,omitempty"`
	FollowUpNeeded  bool                    `json:"follow_up_required"`
	FollowUpDate    *string                 `json:"follow_up_date,omitempty"`
}

type CreateSurveillanceRequest struct {
	InspectorID         uuid.UUID           `json:"inspector_id"`
	ObservationDate     string              `json:"observation_date"`
	ObservationTime     string              `json:"observation_time"`
	Location            string              `json:"location"`
	GPSCoordinates      *GPSCoordinates     `json:"gps_coordinates,omitempty"`
	FarmInspectionID    *uuid.UUID          `json:"farm_inspection_id,omitempty"`
	PestType            string              `json:"pest_type"`
	ScientificName      *string             `json:"scientific_name,omitempty"`
	PopulationDensity   PopulationDensity   `json:"population_density"`
	AffectedCrops       []string            `json:"affected_crops"`
	Trap                *TrapMetadata       `json:"trap_results,omitempty"`
	Weather             WeatherConditions   `json:"weather_conditions"`
	VisualSigns         []string            `json:"visual_signs"`
	DamageAssessment    DamageAssessment    `json:"damage_assessment"`
	DistributionPattern DistributionPattern `json:"distribution_pattern"`
	ControlMeasures     []string            `json:"control_measures_recommended"`
	Notes               *string             `json:"notes,omitempty"`
	FollowUpNeeded      bool                `json:"follow_up_required"`
	FollowUpDate        *string             `json:"follow_up_date,omitempty"`
}

type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type UpdateUserRequest struct {
	Name *string `json:"name,omitempty"`
	Role *Role   `json:"role,omitempty"`
}

type CreateFarmRequest struct {
	Name               string          `json:"name"`
	Owner              string          `json:"owner"`
	Location           string          `json:"location"`
	GPSCoordinates     *GPSCoordinates `json:"gps_coordinates,omitempty"`
	RegistrationNumber string          `json:"registration_number"`
	CropTypes          []string        `json:"crop_types"`
}
