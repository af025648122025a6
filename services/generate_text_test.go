package services

import (
	"context"
	"testing"

	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gatewayResponse = `{
	"refinedTitle": "Ten Ways To Ship Faster",
	"metaTitle": "Ship Faster | Blog",
	"metaDescription": "Practical ways to ship faster.",
	"suggestedSlug": "ten-ways-to-ship-faster",
	"excerpt": "Shipping faster is mostly about smaller batches.",
	"contentHtml": "<h2>Intro</h2><p>Smaller batches win.</p>",
	"faq": [{"question": "How small?", "answer": "Very small."}]
}`

func draftPost() *models.BlogPost {
	return &models.BlogPost{
		ID:     uuid.New(),
		Slug:   "ship-faster",
		Status: models.PostStatusDraft,
		Title:  "Ship faster",
	}
}

func newTextFixture(gateway *fakeTextGateway, posts ...*models.BlogPost) (*TextGenerator, *fakePostRepo, *fakeJobRepo, *fakeAuditRepo) {
	postRepo := newFakePostRepo(posts...)
	jobRepo := &fakeJobRepo{}
	auditRepo := &fakeAuditRepo{}
	generator := NewTextGenerator(postRepo, NewJobTracker(jobRepo), NewAuditRecorder(auditRepo), gateway)
	return generator, postRepo, jobRepo, auditRepo
}

func TestTextGenerator_Success(t *testing.T) {
	post := draftPost()
	gateway := &fakeTextGateway{response: gatewayResponse}
	generator, postRepo, jobRepo, auditRepo := newTextFixture(gateway, post)

	actorID := uuid.New()
	content, err := generator.Generate(context.Background(), actorID, GenerateTextInput{
		PostID: post.ID,
		Title:  "Ship faster",
		Brief:  "Why small batches beat big launches",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ten Ways To Ship Faster", content.RefinedTitle)
	require.Len(t, content.FAQ, 1)

	got := postRepo.posts[post.ID]
	assert.Equal(t, models.PostStatusReady, got.Status)
	assert.Equal(t, "Ten Ways To Ship Faster", got.Title)
	assert.Equal(t, "ten-ways-to-ship-faster", got.Slug)
	require.NotNil(t, got.Excerpt)
	assert.NotEmpty(t, *got.Excerpt)
	require.NotNil(t, got.ContentHTML)
	assert.NotEmpty(t, *got.ContentHTML)

	jobs := jobRepo.byType(models.JobTypeGenerateText)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusSuccess, jobs[0].Status)
	assert.Equal(t, "Ten Ways To Ship Faster", jobs[0].Result["refinedTitle"])

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, "generate_text", auditRepo.entries[0].Action)
	require.NotNil(t, auditRepo.entries[0].ActorUserID)
	assert.Equal(t, actorID, *auditRepo.entries[0].ActorUserID)
}

func TestTextGenerator_AppliesDefaults(t *testing.T) {
	post := draftPost()
	gateway := &fakeTextGateway{response: gatewayResponse}
	generator, postRepo, _, _ := newTextFixture(gateway, post)

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateTextInput{
		PostID: post.ID,
		Title:  "Ship faster",
		Brief:  "Brief",
	})
	require.NoError(t, err)

	// Defaults land in the persisted generation parameters.
	require.NotEmpty(t, postRepo.fieldWrites)
	first := postRepo.fieldWrites[0]
	assert.Equal(t, "professional", first["ai_tone"])
	assert.Equal(t, "medium", first["ai_length"])
	assert.Equal(t, "general audience", first["ai_target_audience"])
	assert.Equal(t, "pt-BR", first["ai_language"])

	// The system prompt reflects the defaults.
	require.NotEmpty(t, gateway.prompts)
	assert.Contains(t, gateway.prompts[0], "professional")
	assert.Contains(t, gateway.prompts[0], "1000-1500 words")
	assert.Contains(t, gateway.prompts[0], "Brazilian Portuguese")
}

func TestTextGenerator_RateLimitMarksPostFailed(t *testing.T) {
	post := draftPost()
	gateway := &fakeTextGateway{err: errs.NewRateLimitedError()}
	generator, postRepo, jobRepo, auditRepo := newTextFixture(gateway, post)

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateTextInput{
		PostID: post.ID,
		Title:  "Ship faster",
		Brief:  "Brief",
	})
	require.Error(t, err)
	assert.True(t, errs.IsRateLimited(err))

	got := postRepo.posts[post.ID]
	assert.Equal(t, models.PostStatusFailed, got.Status)
	// Content fields stay as they were.
	assert.Nil(t, got.ContentHTML)
	assert.Nil(t, got.Excerpt)

	jobs := jobRepo.byType(models.JobTypeGenerateText)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusFailed, jobs[0].Status)
	require.NotNil(t, jobs[0].ErrorMessage)
	assert.Contains(t, *jobs[0].ErrorMessage, "rate limit")

	assert.Empty(t, auditRepo.entries)
}

func TestTextGenerator_MalformedResponseFailsJob(t *testing.T) {
	post := draftPost()
	gateway := &fakeTextGateway{response: "Sure! Here is your article: <h2>..."}
	generator, postRepo, jobRepo, _ := newTextFixture(gateway, post)

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateTextInput{
		PostID: post.ID,
		Title:  "Ship faster",
		Brief:  "Brief",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMalformedResponse)

	// The post stays in generating; only throttling forces failed.
	assert.Equal(t, models.PostStatusGenerating, postRepo.posts[post.ID].Status)

	jobs := jobRepo.byType(models.JobTypeGenerateText)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusFailed, jobs[0].Status)
}

func TestTextGenerator_ValidatesInput(t *testing.T) {
	post := draftPost()
	generator, _, jobRepo, _ := newTextFixture(&fakeTextGateway{response: gatewayResponse}, post)

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateTextInput{PostID: post.ID, Brief: "Brief"})
	assert.Error(t, err)

	_, err = generator.Generate(context.Background(), uuid.New(), GenerateTextInput{PostID: post.ID, Title: "Title"})
	assert.Error(t, err)

	assert.Empty(t, jobRepo.jobs)
}

func TestTextGenerator_UnknownPost(t *testing.T) {
	generator, _, jobRepo, _ := newTextFixture(&fakeTextGateway{response: gatewayResponse})

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateTextInput{
		PostID: uuid.New(),
		Title:  "Title",
		Brief:  "Brief",
	})
	assert.Error(t, err)
	assert.Empty(t, jobRepo.jobs)
}

func TestTextGenerator_RejectsPublishedPost(t *testing.T) {
	post := draftPost()
	post.Status = models.PostStatusPublished
	generator, _, jobRepo, _ := newTextFixture(&fakeTextGateway{response: gatewayResponse}, post)

	_, err := generator.Generate(context.Background(), uuid.New(), GenerateTextInput{
		PostID: post.ID,
		Title:  "Title",
		Brief:  "Brief",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrBadTransition)
	assert.Empty(t, jobRepo.jobs)
}
