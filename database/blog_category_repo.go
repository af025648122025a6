package database

import (
	"errors"

	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogCategoryRepo struct {
	db *gorm.DB
}

func NewBlogCategoryRepo(db *gorm.DB) *BlogCategoryRepo {
	return &BlogCategoryRepo{db}
}

// FindAll returns all categories ordered by name.
func (r *BlogCategoryRepo) FindAll() ([]*models.BlogCategory, error) {
	var categories []*models.BlogCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID, or nil when no row exists.
func (r *BlogCategoryRepo) FindByID(id uuid.UUID) (*models.BlogCategory, error) {
	var category models.BlogCategory
	err := r.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Add inserts a new category into the database
func (r *BlogCategoryRepo) Add(category *models.BlogCategory) error {
	return r.db.Create(category).Error
}

// Update updates an existing category in the database
func (r *BlogCategoryRepo) Update(category *models.BlogCategory) error {
	return r.db.Save(category).Error
}

// Delete removes a category by id. Posts keep a weak reference; the
// foreign key nulls category_id on delete.
func (r *BlogCategoryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogCategory{}, "id = ?", id).Error
}
