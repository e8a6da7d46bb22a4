package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// BOOKING INTAKE
// ============================================================================

// Booking is a public inspection booking request. It is created by an
// unauthenticated submitter and moved through its lifecycle only by workflow
// transitions; records are never deleted, terminal states preserve history.
type Booking struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	ReferenceNumber string          `json:"reference_number" db:"reference_number"`
	SubmissionToken string          `json:"submission_token" db:"submission_token"`
	Contact         ContactInfo     `json:"contact" db:"contact"`
	InspectionType  InspectionType  `json:"inspection_type" db:"inspection_type"`
	PreferredDate   string          `json:"preferred_date" db:"preferred_date"`
	PreferredTime   string          `json:"preferred_time" db:"preferred_time"`
	AlternativeDate *string         `json:"alternative_date,omitempty" db:"alternative_date"`
	AlternativeTime *string         `json:"alternative_time,omitempty" db:"alternative_time"`
	Urgency         Urgency         `json:"urgency" db:"urgency"`
	ImportDetails   *ImportRequest  `json:"import_details,omitempty" db:"import_details"`
	FarmDetails     *FarmRequest    `json:"farm_details,omitempty" db:"farm_details"`
	SpecialRequests *string         `json:"special_requirements,omitempty" db:"special_requirements"`
	Notes           *string         `json:"additional_notes,omitempty" db:"additional_notes"`
	Status          BookingStatus   `json:"status" db:"status"`
	AssignedTo      *uuid.UUID      `json:"assigned_inspector,omitempty" db:"assigned_inspector"`
	RejectionReason *string         `json:"rejection_reason,omitempty" db:"rejection_reason"`
	InspectionRef   *string         `json:"inspection_ref,omitempty" db:"inspection_ref"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

type ContactInfo struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Company  *string `json:"company,omitempty"`
}

func (c ContactInfo) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *ContactInfo) Scan(value any) error        { return jsonbScan(c, value) }

// ImportRequest is the type-specific payload of an import booking.
type ImportRequest struct {
	Commodity     string  `json:"commodity"`
	OriginCountry string  `json:"origin_country"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	PortOfEntry   string  `json:"port_of_entry"`
}

func (r ImportRequest) Value() (driver.Value, error) { return jsonbValue(r) }
func (r *ImportRequest) Scan(value any) error        { return jsonbScan(r, value) }

// FarmRequest is the type-specific payload of a farm booking.
type FarmRequest struct {
	FarmName     string   `json:"farm_name"`
	FarmLocation string   `json:"farm_location"`
	CropTypes    []string `json:"crop_types"`
	FarmSize     float64  `json:"farm_size"`
}

func (r FarmRequest) Value() (driver.Value, error) { return jsonbValue(r) }
func (r *FarmRequest) Scan(value any) error        { return jsonbScan(r, value) }

// AuditEntry is an immutable record of a workflow transition. The audit log
// is append-only, keyed by (entity_id, timestamp).
type AuditEntry struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	EntityType EntityType `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id" db:"entity_id"`
	ActorID    string     `json:"actor_id" db:"actor_id"`
	ActorRole  Role       `json:"actor_role" db:"actor_role"`
	FromState  string     `json:"from_state" db:"from_state"`
	ToState    string     `json:"to_state" db:"to_state"`
	Note       *string    `json:"note,omitempty" db:"note"`
	Timestamp  time.Time  `json:"timestamp" db:"timestamp"`
}
