package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ============================================================================
// PEST SURVEILLANCE
// ============================================================================

type PestSurveillance struct {
	ID                  uuid.UUID           `json:"id" db:"id"`
	ReferenceNumber     string              `json:"reference_number" db:"reference_number"`
	InspectorID         uuid.UUID           `json:"inspector_id" db:"inspector_id"`
	ObservationDate     string              `json:"observation_date" db:"observation_date"`
	ObservationTime     string              `json:"observation_time" db:"observation_time"`
	Location            string              `json:"location" db:"location"`
	GPSCoordinates      *GPSCoordinates     `json:"gps_coordinates,omitempty" db:"gps_coordinates"`
	GPSUnavailable      bool                `json:"gps_unavailable" db:"gps_unavailable"`
	FarmInspectionID    *uuid.UUID          `json:"farm_inspection_id,omitempty" db:"farm_inspection_id"`
	PestType            string              `json:"pest_type" db:"pest_type"`
	ScientificName      *string             `json:"scientific_name,omitempty" db:"scientific_name"`
	PopulationDensity   PopulationDensity   `json:"population_density" db:"population_density"`
	AffectedCrops       pq.StringArray      `json:"affected_crops" db:"affected_crops"`
	Trap                *TrapMetadata       `json:"trap_results,omitempty" db:"trap_results"`
	Weather             WeatherConditions   `json:"weather_conditions" db:"weather_conditions"`
	VisualSigns         pq.StringArray      `json:"visual_signs" db:"visual_signs"`
	DamageAssessment    DamageAssessment    `json:"damage_assessment" db:"damage_assessment"`
	DistributionPattern DistributionPattern `json:"distribution_pattern" db:"distribution_pattern"`
	ControlMeasures     pq.StringArray      `json:"control_measures_recommended" db:"control_measures"`
	Photos              pq.StringArray      `json:"photos" db:"photos"`
	Notes               *string             `json:"notes,omitempty" db:"notes"`
	FollowUpNeeded      bool                `json:"follow_up_required" db:"follow_up_required"`
	FollowUpDate        *string             `json:"follow_up_date,omitempty" db:"follow_up_date"`
	CreatedAt           time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" db:"updated_at"`
}

type TrapMetadata struct {
	TrapType     string `json:"trap_type"`
	TrapCount    int    `json:"trap_count"`
	TrapLocation string `json:"trap_location"`
}

func (t TrapMetadata) Value() (driver.Value, error) { return jsonbValue(t) }
func (t *TrapMetadata) Scan(value any) error        { return jsonbScan(t, value) }

type WeatherConditions struct {
	Temperature   float64    `json:"temperature"`
	Humidity      float64    `json:"humidity"`
	WindSpeed     float64    `json:"wind_speed"`
	Precipitation bool       `json:"precipitation"`
	CloudCover    CloudCover `json:"cloud_cover"`
}

func (w WeatherConditions) Value() (driver.Value, error) { return jsonbValue(w) }
func (w *WeatherConditions) Scan(value any) error        { return jsonbScan(w, value) }
