package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one row of the system log.
type AuditRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Action    AuditAction
	Details   map[string]any
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}
