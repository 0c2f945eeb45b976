package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types published to the audit and integration stream
const (
	EventUserRegistered       = "user.registered"
	EventEnterpriseRegistered = "enterprise.registered"
	EventEnterpriseModerated  = "enterprise.moderated"
	EventWorkshopCreated      = "workshop.created"
	EventWorkshopModerated    = "workshop.moderated"
	EventWorkshopDeleted      = "workshop.deleted"
	EventRegistrationCreated  = "registration.created"
	EventRegistrationDecided  = "registration.decided"
	EventUserDeleted          = "user.deleted"
	EventEnterpriseDeleted    = "enterprise.deleted"
)

// Event is the envelope for every message on the stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent creates an event envelope with identity and timing filled in
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "marketplace-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// StatusChangeEvent captures a moderation decision on any entity
type StatusChangeEvent struct {
	EntityID   uint   `json:"entity_id"`
	ActorID    uint   `json:"actor_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

// RegistrationEvent captures a registration outcome
type RegistrationEvent struct {
	RegistrationID uint   `json:"registration_id"`
	UserID         uint   `json:"user_id"`
	WorkshopID     uint   `json:"workshop_id"`
	Status         string `json:"status"`
}

// AccountEvent captures account lifecycle changes
type AccountEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
