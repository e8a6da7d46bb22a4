package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ============================================================================
// USERS & FARM REGISTRY
// ============================================================================

// User is an authority staff account. Accounts are created by admin action
// only; role changes are admin-only writes. Inactive users keep their history
// but cannot be assigned to bookings.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      Role      `json:"role" db:"role"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Actor is the resolved identity of the caller, supplied by the auth gateway
// headers. Public submitters carry RolePublic and an empty ID.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func PublicActor() Actor {
	return Actor{Role: RolePublic}
}

type Farm struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	Name               string          `json:"name" db:"name"`
	Owner              string          `json:"owner" db:"owner"`
	Location           string          `json:"location" db:"location"`
	GPSCoordinates     *GPSCoordinates `json:"gps_coordinates,omitempty" db:"gps_coordinates"`
	RegistrationNumber string          `json:"registration_number" db:"registration_number"`
	CropTypes          pq.StringArray  `json:"crop_types" db:"crop_types"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}
