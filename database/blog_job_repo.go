package database

import (
	"errors"

	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogJobRepo struct {
	db *gorm.DB
}

func NewBlogJobRepo(db *gorm.DB) *BlogJobRepo {
	return &BlogJobRepo{db}
}

// Add inserts a new ledger row.
func (r *BlogJobRepo) Add(job *models.BlogJob) error {
	return r.db.Create(job).Error
}

// FindByID returns a job by its ID, or nil when no row exists.
func (r *BlogJobRepo) FindByID(id uuid.UUID) (*models.BlogJob, error) {
	var job models.BlogJob
	err := r.db.First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByPost returns all ledger rows for one post, newest first.
func (r *BlogJobRepo) FindByPost(postID uuid.UUID) ([]*models.BlogJob, error) {
	var jobs []*models.BlogJob
	err := r.db.Where("post_id = ?", postID).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

// Update persists the given job row. Rows are never deleted.
func (r *BlogJobRepo) Update(job *models.BlogJob) error {
	return r.db.Save(job).Error
}
