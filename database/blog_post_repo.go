package database

import (
	"errors"
	"time"

	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns all non-deleted blog posts, optionally filtered by
// status, newest first.
func (r *BlogPostRepo) FindAll(status models.PostStatus) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	q := r.db.Preload("Tags").Preload("Category").
		Where("deleted_at IS NULL").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&posts).Error
	return posts, err
}

// FindByID returns a blog post by its ID, or nil when no row exists.
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Tags").Preload("Category").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindDue returns all scheduled, non-deleted posts whose scheduled_at is
// at or before now. Ordering among due posts is immaterial to callers.
func (r *BlogPostRepo) FindDue(now time.Time) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.
		Where("status = ?", models.PostStatusScheduled).
		Where("scheduled_at <= ?", now).
		Where("deleted_at IS NULL").
		Find(&posts).Error
	return posts, err
}

// SlugTakenByPublished reports whether another currently-published post
// holds the given slug. The match is case-sensitive and exact.
func (r *BlogPostRepo) SlugTakenByPublished(slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).
		Where("slug = ?", slug).
		Where("status = ?", models.PostStatusPublished).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// Update persists the given post. Last writer wins; no row lock is taken.
func (r *BlogPostRepo) Update(post *models.BlogPost) error {
	post.UpdatedAt = time.Now().UTC()
	return r.db.Save(post).Error
}

// UpdateFields applies a partial column update to one post.
func (r *BlogPostRepo) UpdateFields(id uuid.UUID, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatus sets only the status column of one post.
func (r *BlogPostRepo) UpdateStatus(id uuid.UUID, status models.PostStatus) error {
	return r.UpdateFields(id, map[string]any{"status": status})
}

// SoftDelete marks a post deleted without removing the row. Ledger rows
// referencing the post are deliberately left untouched.
func (r *BlogPostRepo) SoftDelete(id uuid.UUID, at time.Time) error {
	return r.UpdateFields(id, map[string]any{
		"status":     models.PostStatusDeleted,
		"deleted_at": at,
	})
}

// ReplaceTags swaps the tag set attached to a post.
func (r *BlogPostRepo) ReplaceTags(post *models.BlogPost, tags []models.BlogTag) error {
	return r.db.Model(post).Association("Tags").Replace(tags)
}
