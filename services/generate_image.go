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

// GenerateImageInput carries the editor's cover-image request.
type GenerateImageInput struct {
	PostID      uuid.UUID `json:"postId"`
	Theme       string    `json:"theme"`
	Style       string    `json:"style"`
	AspectRatio string    `json:"aspectRatio"`
}

func (in *GenerateImageInput) applyDefaults() {
	if in.Style == "" {
		in.Style = "modern illustration"
	}
	if in.AspectRatio == "" {
		in.AspectRatio = "16:9"
	}
}

// GeneratedImage is the result of one image-generation pass.
type GeneratedImage struct {
	ImageURL string `json:"imageUrl"`
}

// ImageGenerator drives the generate-image operation: job ledger entry,
// gateway call, object-store upload, post cover update, audit.
type ImageGenerator struct {
	posts   PostRepository
	tracker *JobTracker
	audit   *AuditRecorder
	gateway ImageGateway
	store   ObjectStore
	logger  zerolog.Logger
}

func NewImageGenerator(posts PostRepository, tracker *JobTracker, audit *AuditRecorder, gateway ImageGateway, store ObjectStore) *ImageGenerator {
	return &ImageGenerator{
		posts:   posts,
		tracker: tracker,
		audit:   audit,
		gateway: gateway,
		store:   store,
		logger:  log.With().Str("serviceName", "imageGenerator").Logger(),
	}
}

// Generate produces a cover image for a post and writes its public URL
// onto the cover and social-preview fields. The post status is never
// touched: a failed run only terminalizes its ledger entry, so a cover
// regeneration on a live post can never demote it.
func (g *ImageGenerator) Generate(ctx context.Context, actorID uuid.UUID, input GenerateImageInput) (*GeneratedImage, error) {
	if input.Theme == "" {
		return nil, errs.NewValidationError("theme", "theme is required")
	}
	input.applyDefaults()

	post, err := g.posts.FindByID(input.PostID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog_post", err)
	}
	if post == nil || post.DeletedAt != nil {
		return nil, errs.NewNotFoundError("blog post not found")
	}

	job, err := g.tracker.Start(models.JobTypeGenerateImage, post.ID, map[string]any{
		"theme":       input.Theme,
		"style":       input.Style,
		"aspectRatio": input.AspectRatio,
	})
	if err != nil {
		return nil, err
	}

	prompt := buildImagePrompt(input)

	imageData, err := g.gateway.GenerateImage(ctx, prompt)
	if err != nil {
		g.tracker.failQuietly(job, err.Error())
		return nil, err
	}

	// The timestamp suffix keeps regenerated covers from clobbering the
	// URL a published page may already reference.
	path := fmt.Sprintf("covers/%s-%d.png", post.ID, time.Now().UnixMilli())

	publicURL, err := g.store.Upload(ctx, path, imageData, "image/png")
	if err != nil {
		// Upload failure leaves the post unmodified.
		g.tracker.failQuietly(job, err.Error())
		return nil, err
	}

	if err := g.posts.UpdateFields(post.ID, map[string]any{
		"cover_image_url": publicURL,
		"og_image_url":    publicURL,
	}); err != nil {
		g.tracker.failQuietly(job, err.Error())
		return nil, errs.NewDatabaseError("update", "blog_post", err)
	}

	if err := g.tracker.Complete(job, map[string]any{
		"imageUrl": publicURL,
		"path":     path,
	}); err != nil {
		return nil, err
	}

	g.audit.Record(&actorID, "generate_image", "blog_post", post.ID, map[string]any{
		"jobId":       job.ID.String(),
		"style":       input.Style,
		"aspectRatio": input.AspectRatio,
		"imageUrl":    publicURL,
	})

	g.logger.Info().Str("postId", post.ID.String()).Str("imageUrl", publicURL).Msg("image generation succeeded")
	return &GeneratedImage{ImageURL: publicURL}, nil
}

// buildImagePrompt assembles the gateway prompt. Text inside the image
// is explicitly forbidden.
func buildImagePrompt(input GenerateImageInput) string {
	return fmt.Sprintf(
		"Create a blog cover image: %s. Style: %s. Aspect ratio: %s. Professional, clean, modern design. DO NOT include any text or words in the image. Ultra high resolution.",
		input.Theme, input.Style, input.AspectRatio,
	)
}
