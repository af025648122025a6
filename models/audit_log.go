package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is an immutable record of who did what to which entity.
// Entries are append-only; nothing in the system updates or deletes them.
type AuditLog struct {
	ID          uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ActorUserID *uuid.UUID        `json:"actorUserId,omitempty" db:"actor_user_id" gorm:"type:uuid;index"`
	Action      string            `json:"action" db:"action" gorm:"type:text;not null"`
	EntityType  string            `json:"entityType" db:"entity_type" gorm:"type:text;not null"`
	EntityID    *uuid.UUID        `json:"entityId,omitempty" db:"entity_id" gorm:"type:uuid;index"`
	Details     datatypes.JSONMap `json:"details,omitempty" db:"details" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
