package services

import (
	"testing"

	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/brisaweb/marketing-site-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobTracker_StartCreatesRunningJob(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	tracker := NewJobTracker(jobRepo)
	postID := uuid.New()

	job, err := tracker.Start(models.JobTypeGenerateText, postID, map[string]any{"title": "Hello"})
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusRunning, job.Status)
	assert.Equal(t, postID, job.PostID)
	assert.NotNil(t, job.StartedAt)
	assert.Nil(t, job.FinishedAt)
	require.Len(t, jobRepo.jobs, 1)
	assert.Equal(t, "Hello", jobRepo.jobs[0].Payload["title"])
}

func TestJobTracker_CompleteIsTerminal(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	tracker := NewJobTracker(jobRepo)

	job, err := tracker.Start(models.JobTypeGenerateText, uuid.New(), nil)
	require.NoError(t, err)

	require.NoError(t, tracker.Complete(job, map[string]any{"wordsGenerated": 1200}))
	assert.Equal(t, models.JobStatusSuccess, job.Status)
	assert.NotNil(t, job.FinishedAt)

	// A second terminalization must not touch the first outcome.
	err = tracker.Fail(job, "late failure")
	require.Error(t, err)
	assert.True(t, errs.IsJobTerminal(err))
	assert.Equal(t, models.JobStatusSuccess, jobRepo.jobs[0].Status)
	assert.Equal(t, 1200, jobRepo.jobs[0].Result["wordsGenerated"])
	assert.Nil(t, jobRepo.jobs[0].ErrorMessage)
}

func TestJobTracker_FailIsTerminal(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	tracker := NewJobTracker(jobRepo)

	job, err := tracker.Start(models.JobTypePublishScheduled, uuid.New(), nil)
	require.NoError(t, err)

	require.NoError(t, tracker.Fail(job, "slug conflict"))
	assert.Equal(t, models.JobStatusFailed, job.Status)
	require.NotNil(t, job.ErrorMessage)
	assert.Equal(t, "slug conflict", *job.ErrorMessage)

	err = tracker.Complete(job, map[string]any{"publishedAt": "now"})
	require.Error(t, err)
	assert.True(t, errs.IsJobTerminal(err))
	assert.Equal(t, models.JobStatusFailed, jobRepo.jobs[0].Status)
}

func TestJobTracker_CompleteQuietlySwallowsLedgerError(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	tracker := NewJobTracker(jobRepo)

	job, err := tracker.Start(models.JobTypePublishScheduled, uuid.New(), nil)
	require.NoError(t, err)

	jobRepo.updateErr = assert.AnError
	tracker.completeQuietly(job, map[string]any{"publishedAt": "now"})

	// The write failed; the stored row still shows running.
	assert.Equal(t, models.JobStatusRunning, jobRepo.jobs[0].Status)

	tracker.completeQuietly(nil, nil)
}

func TestJobTracker_StartPropagatesRepoError(t *testing.T) {
	jobRepo := &fakeJobRepo{addErr: assert.AnError}
	tracker := NewJobTracker(jobRepo)

	job, err := tracker.Start(models.JobTypeGenerateImage, uuid.New(), nil)
	assert.Error(t, err)
	assert.Nil(t, job)
}
