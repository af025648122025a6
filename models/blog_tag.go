package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogTag is a reference entity attached to posts through the
// blog_post_tags join table.
type BlogTag struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"type:text;not null;unique"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (BlogTag) TableName() string {
	return "blog_tags"
}
