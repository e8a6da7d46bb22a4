package models

import (
	"database/sql/driver"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ============================================================================
// IMPORT INSPECTIONS
// ============================================================================

type ImportInspection struct {
	ID              uuid.UUID              `json:"id" db:"id"`
	ReferenceNumber string                 `json:"reference_number" db:"reference_number"`
	BookingID       *uuid.UUID             `json:"booking_id,omitempty" db:"booking_id"`
	InspectorID     uuid.UUID              `json:"inspector_id" db:"inspector_id"`
	InspectionDate  string                 `json:"inspection_date" db:"inspection_date"`
	InspectionTime  string                 `json:"inspection_time" db:"inspection_time"`
	Location        string                 `json:"location" db:"location"`
	GPSCoordinates  *GPSCoordinates        `json:"gps_coordinates,omitempty" db:"gps_coordinates"`
	GPSUnavailable  bool                   `json:"gps_unavailable" db:"gps_unavailable"`
	Consignment     ConsignmentDetails     `json:"consignment_details" db:"consignment_details"`
	Commodities     CommodityList          `json:"commodities" db:"commodities"`
	Compliance      ImportComplianceChecks `json:"compliance_checks" db:"compliance_checks"`
	Actions         PhytosanitaryActions   `json:"phytosanitary_actions" db:"phytosanitary_actions"`
	Photos          pq.StringArray         `json:"photos" db:"photos"`
	Notes           *string                `json:"notes,omitempty" db:"notes"`
	Status          ImportInspectionStatus `json:"status" db:"status"`
	StatusOverride  bool                   `json:"status_override" db:"status_override"`
	CreatedAt       time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at" db:"updated_at"`
}

type ConsignmentDetails struct {
	OriginCountry string `json:"origin_country"`
	Importer      string `json:"importer"`
	PortOfEntry   string `json:"port_of_entry"`
}

func (c ConsignmentDetails) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *ConsignmentDetails) Scan(value any) error        { return jsonbScan(c, value) }

type Commodity struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type CommodityList []Commodity

func (l CommodityList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *CommodityList) Scan(value any) error        { return jsonbScan(l, value) }

type ImportComplianceChecks struct {
	ImportPermit             bool `json:"import_permit"`
	PhytosanitaryCertificate bool `json:"phytosanitary_certificate"`
	PestInspection           bool `json:"pest_inspection"`
	DocumentationComplete    bool `json:"documentation_complete"`
	QuarantineRequired       bool `json:"quarantine_required"`
}

func (c ImportComplianceChecks) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *ImportComplianceChecks) Scan(value any) error        { return jsonbScan(c, value) }

// PhytosanitaryActions records the corrective measures applied to a
// consignment. OthersText is required when Others is selected.
type PhytosanitaryActions struct {
	Detention       bool   `json:"detention"`
	Reconfiguration bool   `json:"reconfiguration"`
	Treatment       bool   `json:"treatment"`
	Destroy         bool   `json:"destroy"`
	ReExport        bool   `json:"re_export"`
	Others          bool   `json:"others"`
	OthersText      string `json:"others_text,omitempty"`
}

func (a PhytosanitaryActions) Value() (driver.Value, error) { return jsonbValue(a) }
func (a *PhytosanitaryActions) Scan(value any) error        { return jsonbScan(a, value) }

// DeriveStatus maps the selected actions to the consignment status. Destroy
// and re-export both refuse entry; detention holds the consignment; the
// quarantine flag wins over a clean checklist. An admin override set through
// the workflow always takes precedence over this derivation.
func (i *ImportInspection) DeriveStatus() ImportInspectionStatus {
	switch {
	case i.Actions.Destroy || i.Actions.ReExport:
		return ImportRejected
	case i.Actions.Detention:
		return ImportDetained
	case i.Compliance.QuarantineRequired:
		return ImportQuarantine
	}
	return ImportApproved
}

// ============================================================================
// FARM INSPECTIONS
// ============================================================================

type FarmInspection struct {
	ID              uuid.UUID               `json:"id" db:"id"`
	ReferenceNumber string                  `json:"reference_number" db:"reference_number"`
	BookingID       *uuid.UUID              `json:"booking_id,omitempty" db:"booking_id"`
	FarmID          uuid.UUID               `json:"farm_id" db:"farm_id"`
	InspectorID     uuid.UUID               `json:"inspector_id" db:"inspector_id"`
	InspectionDate  string                  `json:"inspection_date" db:"inspection_date"`
	InspectionTime  string                  `json:"inspection_time" db:"inspection_time"`
	CropTypes       pq.StringArray          `json:"crop_types" db:"crop_types"`
	Sanitation      SanitationChecklist     `json:"sanitation" db:"sanitation"`
	PestPresence    PestPresenceChecklist   `json:"pest_presence" db:"pest_presence"`
	Compliance      ComplianceChecklist     `json:"compliance" db:"compliance"`
	SoilHealth      SoilHealthChecklist     `json:"soil_health" db:"soil_health"`
	Infrastructure  InfrastructureChecklist `json:"infrastructure" db:"infrastructure"`
	GPSCoordinates  *GPSCoordinates         `json:"gps_coordinates,omitempty" db:"gps_coordinates"`
	GPSUnavailable  bool                    `json:"gps_unavailable" db:"gps_unavailable"`
	Photos          pq.StringArray          `json:"photos" db:"photos"`
	Recommendations *string                 `json:"recommendations,omitempty" db:"recommendations"`
	FollowUpNeeded  bool                    `json:"follow_up_required" db:"follow_up_required"`
	FollowUpDate    *string                 `json:"follow_up_date,omitempty" db:"follow_up_date"`
	ComplianceScore int                     `json:"compliance_score" db:"compliance_score"`
	Status          FarmInspectionStatus    `json:"status" db:"status"`
	CreatedAt       time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at" db:"updated_at"`
}

type SanitationChecklist struct {
	EquipmentClean  bool `json:"equipment_clean"`
	StorageProper   bool `json:"storage_proper"`
	WasteManagement bool `json:"waste_management"`
	WaterQuality    bool `json:"water_quality"`
	FacilityHygiene bool `json:"facility_hygiene"`
}

func (c SanitationChecklist) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *SanitationChecklist) Scan(value any) error        { return jsonbScan(c, value) }

func (c SanitationChecklist) checks() []bool {
	return []bool{c.EquipmentClean, c.StorageProper, c.WasteManagement, c.WaterQuality, c.FacilityHygiene}
}

type PestPresenceChecklist struct {
	VisualInspection bool              `json:"visual_inspection"`
	TrapMonitoring   bool              `json:"trap_monitoring"`
	PestIdentified   []string          `json:"pest_identified"`
	PopulationLevel  PopulationDensity `json:"population_level"`
	AffectedAreas    []string          `json:"affected_areas"`
}

func (c PestPresenceChecklist) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *PestPresenceChecklist) Scan(value any) error        { return jsonbScan(c, value) }

type ComplianceChecklist struct {
	PesticideRecords     bool `json:"pesticide_records"`
	WorkerSafety         bool `json:"worker_safety"`
	OrganicStandards     bool `json:"organic_standards"`
	CertificationValid   bool `json:"certification_valid"`
	RecordKeeping        bool `json:"record_keeping"`
	EquipmentMaintenance bool `json:"equipment_maintenance"`
}

func (c ComplianceChecklist) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *ComplianceChecklist) Scan(value any) error        { return jsonbScan(c, value) }

func (c ComplianceChecklist) checks() []bool {
	return []bool{c.PesticideRecords, c.WorkerSafety, c.OrganicStandards, c.CertificationValid, c.RecordKeeping, c.EquipmentMaintenance}
}

type SoilHealthChecklist struct {
	SoilCondition    ConditionRating `json:"soil_condition"`
	DrainageAdequate bool            `json:"drainage_adequate"`
	ErosionControl   bool            `json:"erosion_control"`
	OrganicMatter    bool            `json:"organic_matter"`
}

func (c SoilHealthChecklist) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *SoilHealthChecklist) Scan(value any) error        { return jsonbScan(c, value) }

type InfrastructureChecklist struct {
	IrrigationSystem   ConditionRating `json:"irrigation_system"`
	StorageConditions  ConditionRating `json:"storage_conditions"`
	EquipmentCondition ConditionRating `json:"equipment_condition"`
	AccessRoads        ConditionRating `json:"access_roads"`
}

func (c InfrastructureChecklist) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *InfrastructureChecklist) Scan(value any) error        { return jsonbScan(c, value) }

// ComputeComplianceScore returns round(100 * passed / total) over the boolean
// checks of the sanitation and compliance groups. Enum-rated groups (soil
// health condition, infrastructure) do not contribute to the score.
func (f *FarmInspection) ComputeComplianceScore() int {
	checks := append(f.Sanitation.checks(), f.Compliance.checks()...)
	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return int(math.Round(100 * float64(passed) / float64(len(checks))))
}

// DeriveStatus maps a compliance score to the inspection outcome.
func DeriveFarmStatus(score int) FarmInspectionStatus {
	switch {
	case score >= 90:
		return FarmInspectionCompleted
	case score >= 75:
		return FarmInspectionFollowUpRequired
	}
	return FarmInspectionNonCompliant
}
