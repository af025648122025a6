package database

import (
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogRepo is append-only: entries are inserted and read, never
// updated or deleted.
type AuditLogRepo struct {
	db *gorm.DB
}

func NewAuditLogRepo(db *gorm.DB) *AuditLogRepo {
	return &AuditLogRepo{db}
}

// Add inserts a new audit entry.
func (r *AuditLogRepo) Add(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// FindByEntity returns audit entries for one entity, newest first.
func (r *AuditLogRepo) FindByEntity(entityType string, entityID uuid.UUID) ([]*models.AuditLog, error) {
	var entries []*models.AuditLog
	err := r.db.
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
