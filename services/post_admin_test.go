package services

import (
	"testing"
	"time"

	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(posts ...*models.BlogPost) (*PostAdmin, *fakePostRepo, *fakeAuditRepo) {
	postRepo := newFakePostRepo(posts...)
	auditRepo := &fakeAuditRepo{}
	admin := NewPostAdmin(postRepo, NewAuditRecorder(auditRepo))
	return admin, postRepo, auditRepo
}

func readyPost(slug string) *models.BlogPost {
	body := "<h2>Ready</h2><p>Body.</p>"
	return &models.BlogPost{
		ID:          uuid.New(),
		Slug:        slug,
		Status:      models.PostStatusReady,
		Title:       "Post " + slug,
		ContentHTML: &body,
	}
}

func TestPostAdmin_PublishNow(t *testing.T) {
	post := readyPost("launch-day")
	admin, postRepo, auditRepo := newAdminFixture(post)

	published, err := admin.PublishNow(uuid.New(), post.ID)
	require.NoError(t, err)

	assert.Equal(t, models.PostStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, models.PostStatusPublished, postRepo.posts[post.ID].Status)
	assert.Equal(t, []string{"post_published"}, auditRepo.actions())
}

func TestPostAdmin_PublishNowSlugConflict(t *testing.T) {
	post := readyPost("dup")
	body := "<p>live</p>"
	live := &models.BlogPost{ID: uuid.New(), Slug: "dup", Status: models.PostStatusPublished, Title: "Live", ContentHTML: &body}
	admin, postRepo, auditRepo := newAdminFixture(post, live)

	_, err := admin.PublishNow(uuid.New(), post.ID)
	require.Error(t, err)
	assert.True(t, errs.IsSlugConflict(err))
	assert.Equal(t, models.PostStatusReady, postRepo.posts[post.ID].Status)
	assert.Empty(t, auditRepo.entries)
}

func TestPostAdmin_PublishNowRequiresContent(t *testing.T) {
	post := readyPost("empty")
	post.ContentHTML = nil
	admin, _, _ := newAdminFixture(post)

	_, err := admin.PublishNow(uuid.New(), post.ID)
	require.Error(t, err)
	assert.True(t, errs.IsIncompletePost(err))
}

func TestPostAdmin_Schedule(t *testing.T) {
	post := readyPost("later")
	admin, postRepo, auditRepo := newAdminFixture(post)

	at := time.Now().UTC().Add(2 * time.Hour)
	scheduled, err := admin.Schedule(uuid.New(), post.ID, at)
	require.NoError(t, err)

	assert.Equal(t, models.PostStatusScheduled, scheduled.Status)
	require.NotNil(t, postRepo.posts[post.ID].ScheduledAt)
	assert.Equal(t, at, *postRepo.posts[post.ID].ScheduledAt)
	assert.Equal(t, []string{"post_scheduled"}, auditRepo.actions())
}

func TestPostAdmin_ScheduleRequiresContent(t *testing.T) {
	post := readyPost("later")
	post.ContentHTML = nil
	admin, _, _ := newAdminFixture(post)

	_, err := admin.Schedule(uuid.New(), post.ID, time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.True(t, errs.IsIncompletePost(err))
}

func TestPostAdmin_ScheduleRejectsGenerating(t *testing.T) {
	post := readyPost("busy")
	post.Status = models.PostStatusGenerating
	admin, _, _ := newAdminFixture(post)

	_, err := admin.Schedule(uuid.New(), post.ID, time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrBadTransition)
}

func TestPostAdmin_Archive(t *testing.T) {
	post := readyPost("old")
	post.Status = models.PostStatusPublished
	admin, postRepo, auditRepo := newAdminFixture(post)

	archived, err := admin.Archive(uuid.New(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusArchived, archived.Status)
	assert.Equal(t, models.PostStatusArchived, postRepo.posts[post.ID].Status)
	assert.Equal(t, []string{"post_archived"}, auditRepo.actions())
}

func TestPostAdmin_SoftDelete(t *testing.T) {
	post := readyPost("gone")
	admin, postRepo, auditRepo := newAdminFixture(post)

	require.NoError(t, admin.SoftDelete(uuid.New(), post.ID))

	got := postRepo.posts[post.ID]
	assert.Equal(t, models.PostStatusDeleted, got.Status)
	assert.NotNil(t, got.DeletedAt)
	assert.Equal(t, []string{"post_deleted"}, auditRepo.actions())

	// A deleted post is gone for every operation.
	_, err := admin.PublishNow(uuid.New(), post.ID)
	assert.Error(t, err)
}

func TestPostAdmin_Duplicate(t *testing.T) {
	source := readyPost("original-take")
	tone := "casual"
	source.AITone = &tone
	now := time.Now().UTC()
	source.PublishedAt = &now
	cover := "https://covers.example.com/covers/x.png"
	source.CoverImageURL = &cover
	admin, postRepo, auditRepo := newAdminFixture(source)

	actorID := uuid.New()
	dup, err := admin.Duplicate(actorID, source.ID)
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, dup.ID)
	assert.Equal(t, source.Title+" (Copy)", dup.Title)
	assert.Equal(t, "post-original-take-copy", dup.Slug)
	assert.Equal(t, models.PostStatusDraft, dup.Status)
	assert.Equal(t, source.ContentHTML, dup.ContentHTML)
	require.NotNil(t, dup.AITone)
	assert.Equal(t, "casual", *dup.AITone)
	// Schedule, publication, and cover do not carry over.
	assert.Nil(t, dup.ScheduledAt)
	assert.Nil(t, dup.PublishedAt)
	assert.Nil(t, dup.CoverImageURL)
	require.NotNil(t, dup.AuthorID)
	assert.Equal(t, actorID, *dup.AuthorID)

	assert.Contains(t, postRepo.posts, dup.ID)
	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, "post_duplicated", auditRepo.entries[0].Action)
	assert.Equal(t, source.ID.String(), auditRepo.entries[0].Details["sourcePostId"])
}
