package ports

import (
	"context"
	"time"
)

// AuditEvent records a security-relevant action for the audit trail.
type AuditEvent struct {
	Username string
	Action   string // "register", "login", "note_create", "note_update", "note_delete"
	NoteID   string // empty for auth actions
	Result   string // "ok" or a short failure class
	At       time.Time
}

// AuditRecorder accepts audit events for asynchronous persistence.
// Recording must never block or fail the request being audited.
type AuditRecorder interface {
	Record(event AuditEvent)
}

// AuditStore persists audit events.
type AuditStore interface {
	Insert(ctx context.Context, event AuditEvent) error
}
