package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BlogPost represents a unit of blog content with its own publication
// lifecycle. Soft deletion is an explicit DeletedAt marker rather than
// a GORM soft-delete column so repo queries state the filter themselves.
type BlogPost struct {
	ID     uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Slug   string     `json:"slug" db:"slug" gorm:"type:text;not null;index"`
	Status PostStatus `json:"status" db:"status" gorm:"type:text;not null;default:'draft';index"`

	Title       string  `json:"title" db:"title" gorm:"type:text;not null"`
	Brief       *string `json:"brief,omitempty" db:"brief" gorm:"type:text"`
	Excerpt     *string `json:"excerpt,omitempty" db:"excerpt" gorm:"type:text"`
	ContentHTML *string `json:"contentHtml,omitempty" db:"content_html" gorm:"column:content_html;type:text"`
	// ContentJSON holds structured extras such as the generated FAQ list.
	ContentJSON     datatypes.JSONMap `json:"contentJson,omitempty" db:"content_json" gorm:"column:content_json;type:jsonb"`
	CoverImageURL   *string           `json:"coverImageUrl,omitempty" db:"cover_image_url" gorm:"type:text"`
	OGImageURL      *string           `json:"ogImageUrl,omitempty" db:"og_image_url" gorm:"column:og_image_url;type:text"`
	MetaTitle       *string           `json:"metaTitle,omitempty" db:"meta_title" gorm:"type:text"`
	MetaDescription *string           `json:"metaDescription,omitempty" db:"meta_description" gorm:"type:text"`

	// Generation parameters are persisted so a run can be reproduced
	// and audited later.
	AITone           *string                     `json:"aiTone,omitempty" db:"ai_tone" gorm:"column:ai_tone;type:text"`
	AILength         *string                     `json:"aiLength,omitempty" db:"ai_length" gorm:"column:ai_length;type:text"`
	AITargetAudience *string                     `json:"aiTargetAudience,omitempty" db:"ai_target_audience" gorm:"column:ai_target_audience;type:text"`
	AIKeywords       datatypes.JSONSlice[string] `json:"aiKeywords,omitempty" db:"ai_keywords" gorm:"column:ai_keywords;type:jsonb"`
	AILanguage       *string                     `json:"aiLanguage,omitempty" db:"ai_language" gorm:"column:ai_language;type:text"`

	AuthorID   *uuid.UUID    `json:"authorId,omitempty" db:"author_id" gorm:"type:uuid"`
	CategoryID *uuid.UUID    `json:"categoryId,omitempty" db:"category_id" gorm:"type:uuid;index"`
	Category   *BlogCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Tags       []BlogTag     `json:"tags,omitempty" gorm:"many2many:blog_post_tags;"`

	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty" db:"scheduled_at" gorm:"type:timestamptz;index"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamptz"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" db:"deleted_at" gorm:"type:timestamptz;index"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// HasContent reports whether the post body is present and non-empty.
func (p *BlogPost) HasContent() bool {
	return p.ContentHTML != nil && *p.ContentHTML != ""
}
