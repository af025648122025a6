package services

import (
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// AuditRecorder appends who-did-what entries after the triggering change
// has committed. A failed audit write is logged and never propagated:
// the trail is best effort, not transactional with the state change.
type AuditRecorder struct {
	audit  AuditRepository
	logger zerolog.Logger
}

func NewAuditRecorder(audit AuditRepository) *AuditRecorder {
	return &AuditRecorder{
		audit:  audit,
		logger: log.With().Str("serviceName", "auditRecorder").Logger(),
	}
}

// Record appends one entry. actorID may be nil for system-initiated
// actions such as scheduled publishing of an authorless post.
func (a *AuditRecorder) Record(actorID *uuid.UUID, action, entityType string, entityID uuid.UUID, details map[string]any) {
	entry := &models.AuditLog{
		ID:          uuid.New(),
		ActorUserID: actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    &entityID,
		Details:     datatypes.JSONMap(details),
	}
	if err := a.audit.Add(entry); err != nil {
		a.logger.Error().
			Err(err).
			Str("action", action).
			Str("entityId", entityID.String()).
			Msg("failed to write audit entry")
	}
}
