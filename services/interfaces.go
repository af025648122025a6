package services

import (
	"context"
	"time"

	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
)

// Narrow interfaces over the database and platform collaborators so the
// pipeline is unit-testable without a live backend. The database package
// repos satisfy the repository interfaces.

type PostRepository interface {
	Add(post *models.BlogPost) error
	FindByID(id uuid.UUID) (*models.BlogPost, error)
	FindDue(now time.Time) ([]*models.BlogPost, error)
	SlugTakenByPublished(slug string, excludeID uuid.UUID) (bool, error)
	Update(post *models.BlogPost) error
	UpdateFields(id uuid.UUID, fields map[string]any) error
	UpdateStatus(id uuid.UUID, status models.PostStatus) error
}

type JobRepository interface {
	Add(job *models.BlogJob) error
	Update(job *models.BlogJob) error
}

type AuditRepository interface {
	Add(entry *models.AuditLog) error
}

// TextGateway produces structured (JSON) text from a system and user
// instruction pair. Throttling surfaces as errs.ErrRateLimited.
type TextGateway interface {
	GenerateStructured(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ImageGateway produces a single decoded image from a prompt.
type ImageGateway interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// ObjectStore uploads a binary payload and returns its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}
