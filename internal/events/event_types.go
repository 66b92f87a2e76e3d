package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/interinest/marketplace/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventSessionStarted    EventType = "session_started"
	EventSessionEnded      EventType = "session_ended"
	EventProjectCreated    EventType = "project_created"
	EventProjectUpdated    EventType = "project_updated"
	EventProjectDeleted    EventType = "project_deleted"
	EventDesignerApproved  EventType = "designer_approved"
	EventAccountDisabled   EventType = "account_disabled"
	EventAccountEnabled    EventType = "account_enabled"
)

// AllEventTypes lists every event the services emit.
func AllEventTypes() []EventType {
	return []EventType{
		EventAccountRegistered,
		EventSessionStarted,
		EventSessionEnded,
		EventProjectCreated,
		EventProjectUpdated,
		EventProjectDeleted,
		EventDesignerApproved,
		EventAccountDisabled,
		EventAccountEnabled,
	}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current UTC time.
func New(eventType EventType, subjectID string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Role  domain.Role `json:"role"`
	Email string      `json:"email"`
}

// SessionPayload is shared by session_started and session_ended.
type SessionPayload struct {
	Role domain.Role `json:"role"`
}

// ProjectPayload is shared by the project lifecycle events.
type ProjectPayload struct {
	ProjectID string               `json:"project_id"`
	Title     string               `json:"title,omitempty"`
	Status    domain.ProjectStatus `json:"status,omitempty"`
}

// DesignerApprovedPayload payload.
type DesignerApprovedPayload struct {
	ApprovedBy string `json:"approved_by"`
}

// AccountAccessPayload is shared by account_disabled and account_enabled.
type AccountAccessPayload struct {
	ChangedBy string `json:"changed_by"`
}
