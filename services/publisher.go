package services

import (
	"context"
	"fmt"
	"time"

	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PublishFailure names one post the publisher could not promote.
type PublishFailure struct {
	PostID uuid.UUID `json:"id"`
	Error  string    `json:"error"`
}

// PublishSummary reports the outcome of one publisher run.
type PublishSummary struct {
	Published []uuid.UUID      `json:"published"`
	Failed    []PublishFailure `json:"failed"`
	Timestamp time.Time        `json:"timestamp"`
}

// ScheduledPublisher promotes due scheduled posts to published. It is
// invoked by an external periodic trigger and takes no lock or lease:
// overlapping runs can both pick up the same due post, an accepted
// weakness of the design. Posts are processed sequentially and one
// post's failure never aborts the rest of the batch.
type ScheduledPublisher struct {
	posts   PostRepository
	tracker *JobTracker
	audit   *AuditRecorder
	logger  zerolog.Logger
}

func NewScheduledPublisher(posts PostRepository, tracker *JobTracker, audit *AuditRecorder) *ScheduledPublisher {
	return &ScheduledPublisher{
		posts:   posts,
		tracker: tracker,
		audit:   audit,
		logger:  log.With().Str("serviceName", "scheduledPublisher").Logger(),
	}
}

// Run scans for due posts and attempts to publish each. The run
// timestamp is shared by the whole batch: every post published in this
// run gets the same published_at. Only a failure of the due-post scan
// itself is returned as an error; per-post failures land in the summary.
func (p *ScheduledPublisher) Run(ctx context.Context) (*PublishSummary, error) {
	now := time.Now().UTC()

	due, err := p.posts.FindDue(now)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "scheduled blog_posts", err)
	}

	p.logger.Info().Int("duePosts", len(due)).Time("runAt", now).Msg("publisher run started")

	summary := &PublishSummary{
		Published: []uuid.UUID{},
		Failed:    []PublishFailure{},
		Timestamp: now,
	}

	for _, post := range due {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.publishOne(post, now); err != nil {
			summary.Failed = append(summary.Failed, PublishFailure{PostID: post.ID, Error: err.Error()})
			continue
		}
		summary.Published = append(summary.Published, post.ID)
	}

	p.logger.Info().
		Int("published", len(summary.Published)).
		Int("failed", len(summary.Failed)).
		Msg("publisher run finished")
	return summary, nil
}

// publishOne promotes a single due post under its own ledger entry.
// Validation failures and update errors mark the post failed, terminalize
// the job, and write a failure audit entry; they never propagate past
// the batch loop as anything but a summary line.
func (p *ScheduledPublisher) publishOne(post *models.BlogPost, runAt time.Time) error {
	var scheduledAt any
	if post.ScheduledAt != nil {
		scheduledAt = post.ScheduledAt.Format(time.RFC3339)
	}

	job, err := p.tracker.Start(models.JobTypePublishScheduled, post.ID, map[string]any{
		"scheduledAt": scheduledAt,
	})
	if err != nil {
		// Without a ledger row there is nothing to terminalize; report
		// the post as failed and move on.
		p.logger.Error().Err(err).Str("postId", post.ID.String()).Msg("failed to open publish job")
		return err
	}

	publishErr := p.validateAndPublish(post, runAt)
	if publishErr == nil {
		p.tracker.completeQuietly(job, map[string]any{
			"publishedAt": runAt.Format(time.RFC3339),
		})
		p.audit.Record(post.AuthorID, "post_published_scheduled", "blog_post", post.ID, map[string]any{
			"scheduledAt": scheduledAt,
			"publishedAt": runAt.Format(time.RFC3339),
		})
		p.logger.Info().Str("postId", post.ID.String()).Str("slug", post.Slug).Msg("post published")
		return nil
	}

	if err := p.posts.UpdateStatus(post.ID, models.PostStatusFailed); err != nil {
		p.logger.Error().Err(err).Str("postId", post.ID.String()).Msg("failed to mark post failed")
	}
	p.tracker.failQuietly(job, publishErr.Error())
	p.audit.Record(post.AuthorID, "post_publish_failed", "blog_post", post.ID, map[string]any{
		"error":       publishErr.Error(),
		"scheduledAt": scheduledAt,
	})
	p.logger.Warn().Err(publishErr).Str("postId", post.ID.String()).Msg("post publish failed")
	return publishErr
}

// validateAndPublish enforces the publish-time invariants and performs
// the status update.
func (p *ScheduledPublisher) validateAndPublish(post *models.BlogPost, runAt time.Time) error {
	if !post.HasContent() || post.Slug == "" {
		return errs.NewIncompletePostError("post missing required content or slug")
	}

	taken, err := p.posts.SlugTakenByPublished(post.Slug, post.ID)
	if err != nil {
		return errs.NewDatabaseError("check slug for", "blog_post", err)
	}
	if taken {
		return errs.NewSlugConflictError(post.Slug)
	}

	if !post.Status.CanTransitionTo(models.PostStatusPublished) {
		return errs.NewBadTransitionError(string(post.Status), string(models.PostStatusPublished))
	}

	if err := p.posts.UpdateFields(post.ID, map[string]any{
		"status":       models.PostStatusPublished,
		"published_at": runAt,
	}); err != nil {
		return errs.NewDatabaseError("publish", "blog_post", fmt.Errorf("update failed: %w", err))
	}
	return nil
}
