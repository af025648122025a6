package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BlogJob is the ledger record of one asynchronous operation against one
// post. Rows are created running, terminally updated to success or failed
// exactly once, and never deleted by normal operation.
type BlogJob struct {
	ID     uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PostID uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;index"`
	Type   JobType   `json:"type" db:"type" gorm:"type:text;not null"`
	Status JobStatus `json:"status" db:"status" gorm:"type:text;not null;default:'queued'"`

	Payload      datatypes.JSONMap `json:"payload,omitempty" db:"payload" gorm:"type:jsonb"`
	Result       datatypes.JSONMap `json:"result,omitempty" db:"result" gorm:"type:jsonb"`
	ErrorMessage *string           `json:"errorMessage,omitempty" db:"error_message" gorm:"type:text"`

	CreatedAt  time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	StartedAt  *time.Time `json:"startedAt,omitempty" db:"started_at" gorm:"type:timestamptz"`
	FinishedAt *time.Time `json:"finishedAt,omitempty" db:"finished_at" gorm:"type:timestamptz"`
}

func (BlogJob) TableName() string {
	return "blog_jobs"
}
