package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one entry of the audit trail kept outside the entities.
type AuditRecord struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	Action     AuditAction
	EntityType EntityType
	EntityID   uuid.UUID
	Details    map[string]any
	CreatedAt  time.Time
}

// Notification is an in-app message for a user.
type Notification struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Message     string
	ActionRoute string
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// WorkflowEmail is a request for an outbound email rendered elsewhere.
type WorkflowEmail struct {
	Kind       EmailKind
	Recipients []string
	Payload    map[string]any
}

// SideEffects are the best-effort follow-ups of a committed transition.
type SideEffects struct {
	Audit         *AuditRecord
	Notifications []Notification
	Emails        []WorkflowEmail
}
