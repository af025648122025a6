package services

import (
	"time"

	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PostAdmin covers the interactive lifecycle operations an editor
// triggers directly: publish now, schedule, archive, soft delete,
// duplicate. Each consults the transition table and writes an audit
// entry; none of them are tracked in the job ledger, which is reserved
// for asynchronous operations.
type PostAdmin struct {
	posts  PostRepository
	audit  *AuditRecorder
	logger zerolog.Logger
}

func NewPostAdmin(posts PostRepository, audit *AuditRecorder) *PostAdmin {
	return &PostAdmin{
		posts:  posts,
		audit:  audit,
		logger: log.With().Str("serviceName", "postAdmin").Logger(),
	}
}

func (a *PostAdmin) load(postID uuid.UUID) (*models.BlogPost, error) {
	post, err := a.posts.FindByID(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog_post", err)
	}
	if post == nil || post.DeletedAt != nil {
		return nil, errs.NewNotFoundError("blog post not found")
	}
	return post, nil
}

// PublishNow promotes a post immediately, under the same content and
// slug invariants the scheduled publisher enforces.
func (a *PostAdmin) PublishNow(actorID uuid.UUID, postID uuid.UUID) (*models.BlogPost, error) {
	post, err := a.load(postID)
	if err != nil {
		return nil, err
	}
	if !post.Status.CanTransitionTo(models.PostStatusPublished) {
		return nil, errs.NewBadTransitionError(string(post.Status), string(models.PostStatusPublished))
	}
	if !post.HasContent() || post.Slug == "" {
		return nil, errs.NewIncompletePostError("post missing required content or slug")
	}

	taken, err := a.posts.SlugTakenByPublished(post.Slug, post.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("check slug for", "blog_post", err)
	}
	if taken {
		return nil, errs.NewSlugConflictError(post.Slug)
	}

	now := time.Now().UTC()
	if err := a.posts.UpdateFields(post.ID, map[string]any{
		"status":       models.PostStatusPublished,
		"published_at": now,
	}); err != nil {
		return nil, errs.NewDatabaseError("publish", "blog_post", err)
	}

	a.audit.Record(&actorID, "post_published", "blog_post", post.ID, map[string]any{
		"slug":        post.Slug,
		"publishedAt": now.Format(time.RFC3339),
	})

	post.Status = models.PostStatusPublished
	post.PublishedAt = &now
	return post, nil
}

// Schedule queues a post for the scheduled publisher. The content guard
// applies at scheduling time, not only at publish time.
func (a *PostAdmin) Schedule(actorID uuid.UUID, postID uuid.UUID, at time.Time) (*models.BlogPost, error) {
	post, err := a.load(postID)
	if err != nil {
		return nil, err
	}
	if !post.Status.CanTransitionTo(models.PostStatusScheduled) {
		return nil, errs.NewBadTransitionError(string(post.Status), string(models.PostStatusScheduled))
	}
	if !post.HasContent() {
		return nil, errs.NewIncompletePostError("cannot schedule a post without content")
	}

	if err := a.posts.UpdateFields(post.ID, map[string]any{
		"status":       models.PostStatusScheduled,
		"scheduled_at": at,
	}); err != nil {
		return nil, errs.NewDatabaseError("schedule", "blog_post", err)
	}

	a.audit.Record(&actorID, "post_scheduled", "blog_post", post.ID, map[string]any{
		"scheduledAt": at.Format(time.RFC3339),
	})

	post.Status = models.PostStatusScheduled
	post.ScheduledAt = &at
	return post, nil
}

// Archive parks a post out of every public listing.
func (a *PostAdmin) Archive(actorID uuid.UUID, postID uuid.UUID) (*models.BlogPost, error) {
	post, err := a.load(postID)
	if err != nil {
		return nil, err
	}
	if !post.Status.CanTransitionTo(models.PostStatusArchived) {
		return nil, errs.NewBadTransitionError(string(post.Status), string(models.PostStatusArchived))
	}

	if err := a.posts.UpdateStatus(post.ID, models.PostStatusArchived); err != nil {
		return nil, errs.NewDatabaseError("archive", "blog_post", err)
	}

	a.audit.Record(&actorID, "post_archived", "blog_post", post.ID, nil)

	post.Status = models.PostStatusArchived
	return post, nil
}

// SoftDelete marks the post deleted. Ledger rows for the post remain
// untouched; only the post row itself carries the marker.
func (a *PostAdmin) SoftDelete(actorID uuid.UUID, postID uuid.UUID) error {
	post, err := a.load(postID)
	if err != nil {
		return err
	}
	if !post.Status.CanTransitionTo(models.PostStatusDeleted) {
		return errs.NewBadTransitionError(string(post.Status), string(models.PostStatusDeleted))
	}

	now := time.Now().UTC()
	if err := a.posts.UpdateFields(post.ID, map[string]any{
		"status":     models.PostStatusDeleted,
		"deleted_at": now,
	}); err != nil {
		return errs.NewDatabaseError("delete", "blog_post", err)
	}

	a.audit.Record(&actorID, "post_deleted", "blog_post", post.ID, map[string]any{
		"deletedAt": now.Format(time.RFC3339),
	})
	return nil
}

// Duplicate copies a post into a fresh draft with a derived slug. The
// copy keeps content and generation parameters but drops the schedule,
// publication timestamps, and cover (the editor usually regenerates it).
func (a *PostAdmin) Duplicate(actorID uuid.UUID, postID uuid.UUID) (*models.BlogPost, error) {
	source, err := a.load(postID)
	if err != nil {
		return nil, err
	}

	copyTitle := source.Title + " (Copy)"
	dup := &models.BlogPost{
		ID:               uuid.New(),
		Slug:             Slugify(copyTitle),
		Status:           models.PostStatusDraft,
		Title:            copyTitle,
		Brief:            source.Brief,
		Excerpt:          source.Excerpt,
		ContentHTML:      source.ContentHTML,
		ContentJSON:      source.ContentJSON,
		MetaTitle:        source.MetaTitle,
		MetaDescription:  source.MetaDescription,
		AITone:           source.AITone,
		AILength:         source.AILength,
		AITargetAudience: source.AITargetAudience,
		AIKeywords:       source.AIKeywords,
		AILanguage:       source.AILanguage,
		AuthorID:         &actorID,
		CategoryID:       source.CategoryID,
	}

	if err := a.posts.Add(dup); err != nil {
		return nil, errs.NewDatabaseError("duplicate", "blog_post", err)
	}

	a.audit.Record(&actorID, "post_duplicated", "blog_post", dup.ID, map[string]any{
		"sourcePostId": source.ID.String(),
	})
	return dup, nil
}
