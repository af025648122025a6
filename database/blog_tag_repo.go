package database

import (
	"errors"

	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// FindAll returns all blog tags from the database
func (r *BlogTagRepo) FindAll() ([]*models.BlogTag, error) {
	var tags []*models.BlogTag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindByIDs returns the tags matching the given ids.
func (r *BlogTagRepo) FindByIDs(ids []uuid.UUID) ([]models.BlogTag, error) {
	var tags []models.BlogTag
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

// FindBySlug returns a tag by its slug, or nil when no row exists.
func (r *BlogTagRepo) FindBySlug(slug string) (*models.BlogTag, error) {
	var tag models.BlogTag
	err := r.db.First(&tag, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Add inserts a new blog tag into the database
func (r *BlogTagRepo) Add(tag *models.BlogTag) error {
	return r.db.Create(tag).Error
}

// Delete removes a blog tag by id; join rows go with it.
func (r *BlogTagRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogTag{}, "id = ?", id).Error
}
