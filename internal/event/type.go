package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
)

// NotificationQueue carries status-change events to the notification
// service (booking confirmation e-mails, inspector assignment alerts).
const NotificationQueue = "inspection_noti_events"

type StatusChangedEvent struct {
	EntityType      models.EntityType `json:"entity_type"`
	EntityID        uuid.UUID         `json:"entity_id"`
	ReferenceNumber string            `json:"reference_number"`
	FromState       string            `json:"from_state"`
	ToState         string            `json:"to_state"`
	ActorID         string            `json:"actor_id"`
	OccurredAt      time.Time         `json:"occurred_at"`
}
