package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// GenerateTextInput carries the editor's request. Optional fields fall
// back to the pipeline defaults.
type GenerateTextInput struct {
	PostID         uuid.UUID `json:"postId"`
	Title          string    `json:"title"`
	Brief          string    `json:"brief"`
	Tone           string    `json:"tone"`
	Length         string    `json:"length"`
	TargetAudience string    `json:"targetAudience"`
	Keywords       []string  `json:"keywords"`
	Language       string    `json:"language"`
}

func (in *GenerateTextInput) applyDefaults() {
	if in.Tone == "" {
		in.Tone = "professional"
	}
	if in.Length == "" {
		in.Length = "medium"
	}
	if in.TargetAudience == "" {
		in.TargetAudience = "general audience"
	}
	if in.Language == "" {
		in.Language = "pt-BR"
	}
}

// FAQEntry is one generated question/answer pair.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GeneratedContent is the structured payload parsed from the gateway
// response.
type GeneratedContent struct {
	RefinedTitle    string     `json:"refinedTitle"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	SuggestedSlug   string     `json:"suggestedSlug"`
	Excerpt         string     `json:"excerpt"`
	ContentHTML     string     `json:"contentHtml"`
	FAQ             []FAQEntry `json:"faq"`
}

var lengthGuide = map[string]string{
	"short":  "around 500-800 words",
	"medium": "around 1000-1500 words",
	"long":   "around 2000-3000 words",
}

// TextGenerator drives the generate-text operation: job ledger entry,
// status transition to generating, gateway call, parse, post update to
// ready, audit.
type TextGenerator struct {
	posts   PostRepository
	tracker *JobTracker
	audit   *AuditRecorder
	gateway TextGateway
	logger  zerolog.Logger
}

func NewTextGenerator(posts PostRepository, tracker *JobTracker, audit *AuditRecorder, gateway TextGateway) *TextGenerator {
	return &TextGenerator{
		posts:   posts,
		tracker: tracker,
		audit:   audit,
		gateway: gateway,
		logger:  log.With().Str("serviceName", "textGenerator").Logger(),
	}
}

// Generate runs one text-generation pass for a post. The caller blocks
// until the gateway answers; there is no push-based completion.
func (g *TextGenerator) Generate(ctx context.Context, actorID uuid.UUID, input GenerateTextInput) (*GeneratedContent, error) {
	if input.Title == "" {
		return nil, errs.NewValidationError("title", "title is required")
	}
	if input.Brief == "" {
		return nil, errs.NewValidationError("brief", "brief is required")
	}
	input.applyDefaults()

	post, err := g.posts.FindByID(input.PostID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog_post", err)
	}
	if post == nil || post.DeletedAt != nil {
		return nil, errs.NewNotFoundError("blog post not found")
	}
	if !post.Status.CanTransitionTo(models.PostStatusGenerating) {
		return nil, errs.NewBadTransitionError(string(post.Status), string(models.PostStatusGenerating))
	}

	job, err := g.tracker.Start(models.JobTypeGenerateText, post.ID, map[string]any{
		"title":          input.Title,
		"brief":          input.Brief,
		"tone":           input.Tone,
		"length":         input.Length,
		"targetAudience": input.TargetAudience,
		"keywords":       input.Keywords,
		"language":       input.Language,
	})
	if err != nil {
		return nil, err
	}

	// Persist the generation parameters alongside the status so a run
	// can be reproduced later.
	if err := g.posts.UpdateFields(post.ID, map[string]any{
		"status":             models.PostStatusGenerating,
		"ai_tone":            input.Tone,
		"ai_length":          input.Length,
		"ai_target_audience": input.TargetAudience,
		"ai_keywords":        datatypes.NewJSONSlice(input.Keywords),
		"ai_language":        input.Language,
	}); err != nil {
		g.tracker.failQuietly(job, err.Error())
		return nil, errs.NewDatabaseError("update", "blog_post", err)
	}

	systemPrompt, userPrompt := buildTextPrompts(input)

	raw, err := g.gateway.GenerateStructured(ctx, systemPrompt, userPrompt)
	if err != nil {
		g.tracker.failQuietly(job, err.Error())
		if errors.Is(err, errs.ErrRateLimited) {
			// Throttling pushes the post to failed so the editor sees
			// the run ended; other errors leave it in generating.
			if uerr := g.posts.UpdateStatus(post.ID, models.PostStatusFailed); uerr != nil {
				g.logger.Error().Err(uerr).Str("postId", post.ID.String()).Msg("failed to mark post failed")
			}
		}
		return nil, err
	}

	var content GeneratedContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		g.logger.Error().Err(err).Str("postId", post.ID.String()).Msg("unparseable gateway response")
		g.tracker.failQuietly(job, "failed to parse generation response")
		return nil, errs.NewMalformedResponseError(err)
	}

	title := content.RefinedTitle
	if title == "" {
		title = input.Title
	}
	slug := content.SuggestedSlug
	if slug == "" {
		slug = Slugify(title)
	}
	var extras datatypes.JSONMap
	if len(content.FAQ) > 0 {
		faq := make([]any, 0, len(content.FAQ))
		for _, entry := range content.FAQ {
			faq = append(faq, map[string]any{"question": entry.Question, "answer": entry.Answer})
		}
		extras = datatypes.JSONMap{"faq": faq}
	}

	if err := g.posts.UpdateFields(post.ID, map[string]any{
		"title":            title,
		"meta_title":       content.MetaTitle,
		"meta_description": content.MetaDescription,
		"slug":             slug,
		"excerpt":          content.Excerpt,
		"content_html":     content.ContentHTML,
		"content_json":     extras,
		"status":           models.PostStatusReady,
	}); err != nil {
		g.tracker.failQuietly(job, err.Error())
		return nil, errs.NewDatabaseError("update", "blog_post", err)
	}

	if err := g.tracker.Complete(job, map[string]any{
		"refinedTitle":   title,
		"metaTitle":      content.MetaTitle,
		"wordsGenerated": len(strings.Fields(content.ContentHTML)),
	}); err != nil {
		return nil, err
	}

	g.audit.Record(&actorID, "generate_text", "blog_post", post.ID, map[string]any{
		"jobId":    job.ID.String(),
		"tone":     input.Tone,
		"length":   input.Length,
		"language": input.Language,
	})

	g.logger.Info().Str("postId", post.ID.String()).Str("jobId", job.ID.String()).Msg("text generation succeeded")
	return &content, nil
}

// buildTextPrompts assembles the deterministic instruction pair sent to
// the gateway. The system prompt pins the output to a parseable JSON
// shape.
func buildTextPrompts(input GenerateTextInput) (systemPrompt, userPrompt string) {
	guide, ok := lengthGuide[input.Length]
	if !ok {
		guide = lengthGuide["medium"]
	}

	languageName := "English"
	if input.Language == "pt-BR" {
		languageName = "Brazilian Portuguese"
	}

	var keywordRule string
	if len(input.Keywords) > 0 {
		keywordRule = fmt.Sprintf("\n- Incorporate these SEO keywords naturally: %s", strings.Join(input.Keywords, ", "))
	}

	systemPrompt = fmt.Sprintf(`You are an expert content writer and SEO specialist. Generate high-quality blog content based on the provided brief.

IMPORTANT RULES:
- Write original, engaging, and informative content
- Do NOT invent factual data or statistics unless you can verify them
- Use proper HTML structure with H2, H3 headings
- Include an introduction, main sections, and conclusion
- Maintain a %s tone throughout
- Target audience: %s
- Length: %s
- Language: %s%s

Respond in JSON format:
{
  "refinedTitle": "Optimized title for SEO",
  "metaTitle": "SEO meta title (max 60 chars)",
  "metaDescription": "SEO meta description (max 160 chars)",
  "suggestedSlug": "url-friendly-slug",
  "excerpt": "Brief summary (2-3 sentences)",
  "contentHtml": "<h2>...</h2><p>...</p>... Full article in HTML",
  "faq": [{"question": "...", "answer": "..."}]
}`, input.Tone, input.TargetAudience, guide, languageName, keywordRule)

	userPrompt = fmt.Sprintf("Title: %s\n\nBrief/Description:\n%s", input.Title, input.Brief)
	return systemPrompt, userPrompt
}
