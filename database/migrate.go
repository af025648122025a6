package database

import (
	"github.com/brisaweb/marketing-site-backend/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the blog pipeline tables. Join tables
// for many-to-many relations are created by GORM from the model tags.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.BlogCategory{},
		&models.BlogTag{},
		&models.BlogPost{},
		&models.BlogJob{},
		&models.AuditLog{},
	)
}
