package services

import (
	"time"

	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// JobTracker is the job ledger. Every asynchronous operation opens a
// running row before doing work and terminalizes it exactly once.
// Nothing here enforces at-most-one job per post: concurrent operations
// against the same post each get their own row.
type JobTracker struct {
	jobs   JobRepository
	logger zerolog.Logger
}

func NewJobTracker(jobs JobRepository) *JobTracker {
	return &JobTracker{
		jobs:   jobs,
		logger: log.With().Str("serviceName", "jobTracker").Logger(),
	}
}

// Start creates a running ledger row for one operation against one post
// and returns it as the handle for Complete/Fail.
func (t *JobTracker) Start(jobType models.JobType, postID uuid.UUID, payload map[string]any) (*models.BlogJob, error) {
	now := time.Now().UTC()
	job := &models.BlogJob{
		ID:        uuid.New(),
		PostID:    postID,
		Type:      jobType,
		Status:    models.JobStatusRunning,
		Payload:   datatypes.JSONMap(payload),
		StartedAt: &now,
	}
	if err := t.jobs.Add(job); err != nil {
		return nil, errs.NewDatabaseError("create", "blog_job", err)
	}
	t.logger.Info().
		Str("jobId", job.ID.String()).
		Str("postId", postID.String()).
		Str("type", string(jobType)).
		Msg("job started")
	return job, nil
}

// Complete marks the job successful. Calling it on an already-terminal
// job is a programming error and leaves the first result untouched.
func (t *JobTracker) Complete(job *models.BlogJob, result map[string]any) error {
	if job.Status.Terminal() {
		return errs.NewJobTerminalError(job.ID.String(), string(job.Status))
	}
	now := time.Now().UTC()
	job.Status = models.JobStatusSuccess
	job.Result = datatypes.JSONMap(result)
	job.FinishedAt = &now
	if err := t.jobs.Update(job); err != nil {
		return errs.NewDatabaseError("update", "blog_job", err)
	}
	t.logger.Info().Str("jobId", job.ID.String()).Msg("job succeeded")
	return nil
}

// Fail marks the job failed with the given message, once.
func (t *JobTracker) Fail(job *models.BlogJob, errorMessage string) error {
	if job.Status.Terminal() {
		return errs.NewJobTerminalError(job.ID.String(), string(job.Status))
	}
	now := time.Now().UTC()
	job.Status = models.JobStatusFailed
	job.ErrorMessage = &errorMessage
	job.FinishedAt = &now
	if err := t.jobs.Update(job); err != nil {
		return errs.NewDatabaseError("update", "blog_job", err)
	}
	t.logger.Warn().Str("jobId", job.ID.String()).Str("error", errorMessage).Msg("job failed")
	return nil
}

// completeQuietly terminalizes a job on a path where the operation's
// own outcome is already decided; a ledger write error is only logged.
// Without the log line a failed Complete would leave the job running
// forever with no trace.
func (t *JobTracker) completeQuietly(job *models.BlogJob, result map[string]any) {
	if job == nil {
		return
	}
	if err := t.Complete(job, result); err != nil {
		t.logger.Error().Err(err).Str("jobId", job.ID.String()).Msg("failed to terminalize job")
	}
}

// failQuietly terminalizes a job on an error path where the original
// failure is the one worth surfacing; a ledger write error is only logged.
func (t *JobTracker) failQuietly(job *models.BlogJob, errorMessage string) {
	if job == nil {
		return
	}
	if err := t.Fail(job, errorMessage); err != nil {
		t.logger.Error().Err(err).Str("jobId", job.ID.String()).Msg("failed to terminalize job")
	}
}
