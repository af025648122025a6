package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    PostStatus
		to      PostStatus
		allowed bool
	}{
		{"draft to generating", PostStatusDraft, PostStatusGenerating, true},
		{"draft to scheduled", PostStatusDraft, PostStatusScheduled, true},
		{"draft to published", PostStatusDraft, PostStatusPublished, true},
		{"draft to ready is not direct", PostStatusDraft, PostStatusReady, false},
		{"generating to ready", PostStatusGenerating, PostStatusReady, true},
		{"generating to failed", PostStatusGenerating, PostStatusFailed, true},
		{"generating cannot publish", PostStatusGenerating, PostStatusPublished, false},
		{"ready to published", PostStatusReady, PostStatusPublished, true},
		{"ready to scheduled", PostStatusReady, PostStatusScheduled, true},
		{"scheduled to published", PostStatusScheduled, PostStatusPublished, true},
		{"scheduled to failed", PostStatusScheduled, PostStatusFailed, true},
		{"published to archived", PostStatusPublished, PostStatusArchived, true},
		{"published cannot go back to draft", PostStatusPublished, PostStatusDraft, false},
		{"failed is recoverable to generating", PostStatusFailed, PostStatusGenerating, true},
		{"failed is recoverable to draft", PostStatusFailed, PostStatusDraft, true},
		{"failed to published", PostStatusFailed, PostStatusPublished, true},
		{"archived to draft", PostStatusArchived, PostStatusDraft, true},
		{"archived to deleted", PostStatusArchived, PostStatusDeleted, true},
		{"archived cannot publish directly", PostStatusArchived, PostStatusPublished, false},
		{"deleted is terminal", PostStatusDeleted, PostStatusDraft, false},
		{"deleted cannot be restored to published", PostStatusDeleted, PostStatusPublished, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPostStatus_Valid(t *testing.T) {
	for _, s := range []PostStatus{
		PostStatusDraft, PostStatusGenerating, PostStatusReady, PostStatusScheduled,
		PostStatusPublished, PostStatusFailed, PostStatusArchived, PostStatusDeleted,
	} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, PostStatus("").Valid())
	assert.False(t, PostStatus("pending").Valid())
}

func TestPostStatus_RequiresContent(t *testing.T) {
	assert.True(t, PostStatusPublished.RequiresContent())
	assert.True(t, PostStatusScheduled.RequiresContent())
	assert.False(t, PostStatusDraft.RequiresContent())
	assert.False(t, PostStatusGenerating.RequiresContent())
	assert.False(t, PostStatusArchived.RequiresContent())
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.True(t, JobStatusSuccess.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
	assert.False(t, JobStatusQueued.Terminal())
	assert.False(t, JobStatusRunning.Terminal())
}

func TestBlogPost_HasContent(t *testing.T) {
	empty := ""
	body := "<h2>Intro</h2><p>Body</p>"

	assert.False(t, (&BlogPost{}).HasContent())
	assert.False(t, (&BlogPost{ContentHTML: &empty}).HasContent())
	assert.True(t, (&BlogPost{ContentHTML: &body}).HasContent())
}
