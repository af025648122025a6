package services

import (
	"context"
	"errors"
	"time"

	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
)

// In-memory collaborators shared by the service tests. They hold state
// the way the real repos do, minus the database.

type fakePostRepo struct {
	posts map[uuid.UUID]*models.BlogPost

	findDueErr  error
	updateErr   error
	slugErr     error
	addErr      error
	fieldWrites []map[string]any
}

func newFakePostRepo(posts ...*models.BlogPost) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[uuid.UUID]*models.BlogPost)}
	for _, p := range posts {
		repo.posts[p.ID] = p
	}
	return repo
}

func (r *fakePostRepo) Add(post *models.BlogPost) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return post, nil
}

func (r *fakePostRepo) FindDue(now time.Time) ([]*models.BlogPost, error) {
	if r.findDueErr != nil {
		return nil, r.findDueErr
	}
	var due []*models.BlogPost
	for _, p := range r.posts {
		if p.Status == models.PostStatusScheduled && p.ScheduledAt != nil && !p.ScheduledAt.After(now) && p.DeletedAt == nil {
			due = append(due, p)
		}
	}
	return due, nil
}

func (r *fakePostRepo) SlugTakenByPublished(slug string, excludeID uuid.UUID) (bool, error) {
	if r.slugErr != nil {
		return false, r.slugErr
	}
	for _, p := range r.posts {
		if p.ID != excludeID && p.Status == models.PostStatusPublished && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePostRepo) Update(post *models.BlogPost) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) UpdateFields(id uuid.UUID, fields map[string]any) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.fieldWrites = append(r.fieldWrites, fields)

	post, ok := r.posts[id]
	if !ok {
		return errors.New("post not found")
	}
	for key, value := range fields {
		switch key {
		case "status":
			post.Status = value.(models.PostStatus)
		case "title":
			post.Title = value.(string)
		case "slug":
			post.Slug = value.(string)
		case "excerpt":
			s := value.(string)
			post.Excerpt = &s
		case "content_html":
			s := value.(string)
			post.ContentHTML = &s
		case "meta_title":
			s := value.(string)
			post.MetaTitle = &s
		case "meta_description":
			s := value.(string)
			post.MetaDescription = &s
		case "cover_image_url":
			s := value.(string)
			post.CoverImageURL = &s
		case "og_image_url":
			s := value.(string)
			post.OGImageURL = &s
		case "published_at":
			t := value.(time.Time)
			post.PublishedAt = &t
		case "scheduled_at":
			t := value.(time.Time)
			post.ScheduledAt = &t
		case "deleted_at":
			t := value.(time.Time)
			post.DeletedAt = &t
		}
	}
	return nil
}

func (r *fakePostRepo) UpdateStatus(id uuid.UUID, status models.PostStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	post, ok := r.posts[id]
	if !ok {
		return errors.New("post not found")
	}
	post.Status = status
	return nil
}

type fakeJobRepo struct {
	jobs      []*models.BlogJob
	addErr    error
	updateErr error
}

func (r *fakeJobRepo) Add(job *models.BlogJob) error {
	if r.addErr != nil {
		return r.addErr
	}
	clone := *job
	r.jobs = append(r.jobs, &clone)
	return nil
}

func (r *fakeJobRepo) Update(job *models.BlogJob) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, existing := range r.jobs {
		if existing.ID == job.ID {
			clone := *job
			r.jobs[i] = &clone
			return nil
		}
	}
	return errors.New("job not found")
}

func (r *fakeJobRepo) byType(jobType models.JobType) []*models.BlogJob {
	var out []*models.BlogJob
	for _, j := range r.jobs {
		if j.Type == jobType {
			out = append(out, j)
		}
	}
	return out
}

type fakeAuditRepo struct {
	entries []*models.AuditLog
	addErr  error
}

func (r *fakeAuditRepo) Add(entry *models.AuditLog) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) actions() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeTextGateway struct {
	response string
	err      error
	prompts  []string
}

func (g *fakeTextGateway) GenerateStructured(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	g.prompts = append(g.prompts, systemPrompt, userPrompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type fakeImageGateway struct {
	data []byte
	err  error
}

func (g *fakeImageGateway) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.data, nil
}

type fakeObjectStore struct {
	err     error
	baseURL string
	uploads []string
}

func (s *fakeObjectStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads = append(s.uploads, path)
	return s.baseURL + "/" + path, nil
}
