// Package audit records append-only events for state-changing operations.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the onboarding and invitation flows.
const (
	TypeConfigChanged  = "CONFIG_CHANGED"
	TypeInviteCreated  = "INVITE_CREATED"
	TypeInviteAccepted = "INVITE_ACCEPTED"
)

// Event is one append-only audit record. Rows are never mutated or deleted.
type Event struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Type       string
	OriginType string
	OriginID   *uuid.UUID
	Payload    map[string]any
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
}
