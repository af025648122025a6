package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageFixture(gateway *fakeImageGateway, store *fakeObjectStore, posts ...*models.BlogPost) (*ImageGenerator, *fakePostRepo, *fakeJobRepo, *fakeAuditRepo) {
	postRepo := newFakePostRepo(posts...)
	jobRepo := &fakeJobRepo{}
	auditRepo := &fakeAuditRepo{}
	generator := NewImageGenerator(postRepo, NewJobTracker(jobRepo), NewAuditRecorder(auditRepo), gateway, store)
	return generator, postRepo, jobRepo, auditRepo
}

func TestImageGenerator_Success(t *testing.T) {
	post := draftPost()
	gateway := &fakeImageGateway{data: []byte{0x89, 0x50, 0x4e, 0x47}}
	store := &fakeObjectStore{baseURL: "https://covers.example.com"}
	generator, postRepo, jobRepo, auditRepo := newImageFixture(gateway, store, post)

	result, err := generator.Generate(context.Background(), uuid.New(), GenerateImageInput{
		PostID: post.ID,
		Theme:  "small batches and flow",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ImageURL)

	got := postRepo.posts[post.ID]
	require.NotNil(t, got.CoverImageURL)
	require.NotNil(t, got.OGImageURL)
	assert.Equal(t, result.ImageURL, *got.CoverImageURL)
	assert.Equal(t, result.ImageURL, *got.OGImageURL)
	// Image generation does not touch the publication status.
	assert.Equal(t, models.PostStatusDraft, got.Status)

	require.Len(t, store.uploads, 1)
	assert.Contains(t, store.uploads[0], fmt.Sprintf("covers/%s-", post.ID))

	jobs := jobRepo.byType(models.JobTypeGenerateImage)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusSuccess, jobs[0].Status)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, "generate_image", auditRepo.entries[0].Action)
}

func TestImageGenerator_RequiresTheme(t *testing.T) {
	post := draftPost()
	generator, _, jobRepo, _ := newImageFixture(&fakeImageGateway{}, &fakeObjectStore{}, post)

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateImageInput{PostID: post.ID})
	assert.Error(t, err)
	assert.Empty(t, jobRepo.jobs)
}

func TestImageGenerator_RateLimitFailsOnlyTheJob(t *testing.T) {
	post := draftPost()
	gateway := &fakeImageGateway{err: errs.NewRateLimitedError()}
	generator, postRepo, jobRepo, _ := newImageFixture(gateway, &fakeObjectStore{}, post)

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateImageInput{
		PostID: post.ID,
		Theme:  "flow",
	})
	require.Error(t, err)
	assert.True(t, errs.IsRateLimited(err))

	// The post is not part of the failure: only the ledger entry is.
	assert.Equal(t, models.PostStatusDraft, postRepo.posts[post.ID].Status)

	jobs := jobRepo.byType(models.JobTypeGenerateImage)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusFailed, jobs[0].Status)
}

func TestImageGenerator_RateLimitLeavesPublishedPostLive(t *testing.T) {
	body := "<h2>Live</h2><p>Body.</p>"
	now := time.Now().UTC()
	cover := "https://covers.example.com/covers/old.png"
	post := &models.BlogPost{
		ID:            uuid.New(),
		Slug:          "live-post",
		Status:        models.PostStatusPublished,
		Title:         "Live post",
		ContentHTML:   &body,
		CoverImageURL: &cover,
		PublishedAt:   &now,
	}
	gateway := &fakeImageGateway{err: errs.NewRateLimitedError()}
	generator, postRepo, jobRepo, _ := newImageFixture(gateway, &fakeObjectStore{}, post)

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateImageInput{
		PostID: post.ID,
		Theme:  "fresh cover",
	})
	require.Error(t, err)

	// A throttled cover regeneration must not demote a live post.
	got := postRepo.posts[post.ID]
	assert.Equal(t, models.PostStatusPublished, got.Status)
	require.NotNil(t, got.CoverImageURL)
	assert.Equal(t, cover, *got.CoverImageURL)
	assert.NotNil(t, got.PublishedAt)

	jobs := jobRepo.byType(models.JobTypeGenerateImage)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusFailed, jobs[0].Status)
}

func TestImageGenerator_UploadFailureLeavesPostUntouched(t *testing.T) {
	post := draftPost()
	gateway := &fakeImageGateway{data: []byte{1, 2, 3}}
	store := &fakeObjectStore{err: errs.NewStorageError(assert.AnError)}
	generator, postRepo, jobRepo, auditRepo := newImageFixture(gateway, store, post)

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateImageInput{
		PostID: post.ID,
		Theme:  "flow",
	})
	require.Error(t, err)

	got := postRepo.posts[post.ID]
	assert.Nil(t, got.CoverImageURL)
	assert.Nil(t, got.OGImageURL)
	assert.Equal(t, models.PostStatusDraft, got.Status)

	jobs := jobRepo.byType(models.JobTypeGenerateImage)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusFailed, jobs[0].Status)

	assert.Empty(t, auditRepo.entries)
}

func TestBuildImagePrompt(t *testing.T) {
	input := GenerateImageInput{Theme: "coffee and code", Style: "flat vector", AspectRatio: "4:3"}
	prompt := buildImagePrompt(input)

	assert.Contains(t, prompt, "coffee and code")
	assert.Contains(t, prompt, "flat vector")
	assert.Contains(t, prompt, "4:3")
	assert.Contains(t, prompt, "DO NOT include any text")
}
