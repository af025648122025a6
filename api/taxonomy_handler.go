package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brisaweb/marketing-site-backend/database"
	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/brisaweb/marketing-site-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type taxonomyHandler struct {
	responder        Responder
	logger           zerolog.Logger
	blogCategoryRepo *database.BlogCategoryRepo
	blogTagRepo      *database.BlogTagRepo
}

func newTaxonomyHandler(blogCategoryRepo *database.BlogCategoryRepo, blogTagRepo *database.BlogTagRepo) taxonomyHandler {
	logger := log.With().Str("handlerName", "taxonomyHandler").Logger()

	return taxonomyHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		blogCategoryRepo: blogCategoryRepo,
		blogTagRepo:      blogTagRepo,
	}
}

// getAllCategories retrieves all blog categories
func (h taxonomyHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.blogCategoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "blog_categories", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"categories": categories,
			"total":      len(categories),
		})
	}
}

type categoryRequest struct {
	Name        string  `json:"name"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

// createCategory creates a new blog category
func (h taxonomyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}

		slug := services.Slugify(req.Name)
		if req.Slug != nil && *req.Slug != "" {
			slug = *req.Slug
		}

		category := &models.BlogCategory{
			ID:          uuid.New(),
			Name:        req.Name,
			Slug:        slug,
			Description: req.Description,
		}
		if err := h.blogCategoryRepo.Add(category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create category", "blog_category", err))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}

// updateCategory updates an existing blog category
func (h taxonomyHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid categoryID"))
			return
		}

		category, err := h.blogCategoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "blog_category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("category not found"))
			return
		}

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name != "" {
			category.Name = req.Name
		}
		if req.Slug != nil && *req.Slug != "" {
			category.Slug = *req.Slug
		}
		if req.Description != nil {
			category.Description = req.Description
		}
		category.UpdatedAt = time.Now().UTC()

		if err := h.blogCategoryRepo.Update(category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update category", "blog_category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory deletes a blog category by ID
func (h taxonomyHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid categoryID"))
			return
		}

		if err := h.blogCategoryRepo.Delete(categoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete category", "blog_category", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "category deleted successfully",
		})
	}
}

// getAllTags retrieves all blog tags
func (h taxonomyHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.blogTagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tags", "blog_tags", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"tags":  tags,
			"total": len(tags),
		})
	}
}

type tagRequest struct {
	Name string  `json:"name"`
	Slug *string `json:"slug,omitempty"`
}

// createTag creates a new blog tag. Creation is idempotent on slug: a
// tag that already exists is returned as-is.
func (h taxonomyHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}

		slug := services.Slugify(req.Name)
		if req.Slug != nil && *req.Slug != "" {
			slug = *req.Slug
		}

		existing, err := h.blogTagRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "blog_tag", err))
			return
		}
		if existing != nil {
			h.responder.WriteJSON(w, existing)
			return
		}

		tag := &models.BlogTag{
			ID:   uuid.New(),
			Name: req.Name,
			Slug: slug,
		}
		if err := h.blogTagRepo.Add(tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create tag", "blog_tag", err))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tag)
	}
}

// deleteTag deletes a blog tag by ID
func (h taxonomyHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		if err := h.blogTagRepo.Delete(tagID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete tag", "blog_tag", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "tag deleted successfully",
		})
	}
}
