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

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	blogTagRepo  *database.BlogTagRepo
	blogJobRepo  *database.BlogJobRepo
	postAdmin    *services.PostAdmin
	audit        *services.AuditRecorder
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, blogTagRepo *database.BlogTagRepo, blogJobRepo *database.BlogJobRepo, postAdmin *services.PostAdmin, audit *services.AuditRecorder) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		blogTagRepo:  blogTagRepo,
		blogJobRepo:  blogJobRepo,
		postAdmin:    postAdmin,
		audit:        audit,
	}
}

// BlogPostCollection represents multiple blog posts
type BlogPostCollection struct {
	BlogPosts []*models.BlogPost `json:"blogPosts"`
	Total     int                `json:"total"`
}

// blogPostIDFromRequest parses the path parameter shared by every
// single-post endpoint.
func blogPostIDFromRequest(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "blogPostID")
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing blogPostID")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid blogPostID")
	}
	return id, nil
}

// getAllBlogPosts retrieves all non-deleted blog posts, optionally
// filtered by status via ?status=.
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := models.PostStatus(r.URL.Query().Get("status"))
		if status != "" && !status.Valid() {
			h.responder.WriteError(w, errs.NewBadRequestError("unknown status filter"))
			return
		}

		posts, err := h.blogPostRepo.FindAll(status)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, BlogPostCollection{
			BlogPosts: posts,
			Total:     len(posts),
		})
	}
}

// getBlogPost retrieves a specific blog post by ID
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil || post.DeletedAt != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// createBlogPostRequest is the editor's draft payload.
type createBlogPostRequest struct {
	Title          string      `json:"title"`
	Brief          *string     `json:"brief,omitempty"`
	ContentHTML    *string     `json:"contentHtml,omitempty"`
	CategoryID     *uuid.UUID  `json:"categoryId,omitempty"`
	TagIDs         []uuid.UUID `json:"tagIds,omitempty"`
	Tone           *string     `json:"tone,omitempty"`
	Length         *string     `json:"length,omitempty"`
	TargetAudience *string     `json:"targetAudience,omitempty"`
	Keywords       []string    `json:"keywords,omitempty"`
	Language       *string     `json:"language,omitempty"`
}

// createBlogPost creates a new draft post
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBlogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewValidationError("title", "title is required"))
			return
		}

		actorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		post := &models.BlogPost{
			ID:               uuid.New(),
			Slug:             services.Slugify(req.Title),
			Status:           models.PostStatusDraft,
			Title:            req.Title,
			Brief:            req.Brief,
			ContentHTML:      req.ContentHTML,
			CategoryID:       req.CategoryID,
			AITone:           req.Tone,
			AILength:         req.Length,
			AITargetAudience: req.TargetAudience,
			AILanguage:       req.Language,
			AuthorID:         &actorID,
		}
		if len(req.Keywords) > 0 {
			post.AIKeywords = req.Keywords
		}

		if err := h.blogPostRepo.Add(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog post", "blog_post", err))
			return
		}

		if len(req.TagIDs) > 0 {
			tags, err := h.blogTagRepo.FindByIDs(req.TagIDs)
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to load tags for new blog post")
			} else if err := h.blogPostRepo.ReplaceTags(post, tags); err != nil {
				h.logger.Error().Err(err).Msg("Failed to attach tags to new blog post")
			}
		}

		h.audit.Record(&actorID, "post_created", "blog_post", post.ID, map[string]any{
			"title": post.Title,
			"slug":  post.Slug,
		})

		created, err := h.blogPostRepo.FindByID(post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created blog post", "blog_post", err))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}

// updateBlogPostRequest carries partial content edits. Status is not
// editable here; the lifecycle endpoints own status changes.
type updateBlogPostRequest struct {
	Title           *string     `json:"title,omitempty"`
	Slug            *string     `json:"slug,omitempty"`
	Brief           *string     `json:"brief,omitempty"`
	Excerpt         *string     `json:"excerpt,omitempty"`
	ContentHTML     *string     `json:"contentHtml,omitempty"`
	MetaTitle       *string     `json:"metaTitle,omitempty"`
	MetaDescription *string     `json:"metaDescription,omitempty"`
	CategoryID      *uuid.UUID  `json:"categoryId,omitempty"`
	TagIDs          []uuid.UUID `json:"tagIds,omitempty"`
}

// updateBlogPost updates an existing blog post's content fields
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil || post.DeletedAt != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		var req updateBlogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title != nil {
			post.Title = *req.Title
		}
		if req.Slug != nil {
			post.Slug = *req.Slug
		}
		if req.Brief != nil {
			post.Brief = req.Brief
		}
		if req.Excerpt != nil {
			post.Excerpt = req.Excerpt
		}
		if req.ContentHTML != nil {
			post.ContentHTML = req.ContentHTML
		}
		if req.MetaTitle != nil {
			post.MetaTitle = req.MetaTitle
		}
		if req.MetaDescription != nil {
			post.MetaDescription = req.MetaDescription
		}
		if req.CategoryID != nil {
			post.CategoryID = req.CategoryID
		}

		if err := h.blogPostRepo.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog_post", err))
			return
		}

		if actorID, err := ctxGetUserID(r.Context()); err == nil {
			h.audit.Record(&actorID, "post_updated", "blog_post", post.ID, map[string]any{
				"slug": post.Slug,
			})
		}

		if req.TagIDs != nil {
			tags, err := h.blogTagRepo.FindByIDs(req.TagIDs)
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to load tags for blog post update")
			} else if err := h.blogPostRepo.ReplaceTags(post, tags); err != nil {
				h.logger.Error().Err(err).Msg("Failed to replace tags on blog post")
			}
		}

		updated, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteBlogPost soft-deletes a blog post by ID
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		if err := h.postAdmin.SoftDelete(actorID, blogPostID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog post deleted successfully",
		})
	}
}

// publishBlogPost promotes a post immediately
func (h blogPostHandler) publishBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		post, err := h.postAdmin.PublishNow(actorID, blogPostID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

type scheduleBlogPostRequest struct {
	ScheduledAt time.Time `json:"scheduledAt"`
}

// scheduleBlogPost queues a post for the scheduled publisher
func (h blogPostHandler) scheduleBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req scheduleBlogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.ScheduledAt.IsZero() {
			h.responder.WriteError(w, errs.NewValidationError("scheduledAt", "scheduledAt is required"))
			return
		}

		actorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		post, err := h.postAdmin.Schedule(actorID, blogPostID, req.ScheduledAt.UTC())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// archiveBlogPost parks a post out of the active lifecycle
func (h blogPostHandler) archiveBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		post, err := h.postAdmin.Archive(actorID, blogPostID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// duplicateBlogPost copies a post into a fresh draft
func (h blogPostHandler) duplicateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		dup, err := h.postAdmin.Duplicate(actorID, blogPostID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, dup)
	}
}

// getBlogPostJobs lists the ledger entries for one post, newest first
func (h blogPostHandler) getBlogPostJobs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := blogPostIDFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		jobs, err := h.blogJobRepo.FindByPost(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog jobs", "blog_jobs", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"jobs":  jobs,
			"total": len(jobs),
		})
	}
}
