package models

// PostStatus enumerates the publication lifecycle of a blog post.
type PostStatus string

const (
	PostStatusDraft      PostStatus = "draft"
	PostStatusGenerating PostStatus = "generating"
	PostStatusReady      PostStatus = "ready"
	PostStatusScheduled  PostStatus = "scheduled"
	PostStatusPublished  PostStatus = "published"
	PostStatusFailed     PostStatus = "failed"
	PostStatusArchived   PostStatus = "archived"
	PostStatusDeleted    PostStatus = "deleted"
)

// allowedTransitions is the single source of truth for which status
// changes are legal. Every mutator goes through CanTransitionTo instead
// of re-deriving legality at the call site.
var allowedTransitions = map[PostStatus][]PostStatus{
	PostStatusDraft:      {PostStatusGenerating, PostStatusScheduled, PostStatusPublished, PostStatusArchived, PostStatusDeleted},
	PostStatusGenerating: {PostStatusReady, PostStatusFailed},
	PostStatusReady:      {PostStatusPublished, PostStatusScheduled, PostStatusArchived, PostStatusDeleted},
	PostStatusScheduled:  {PostStatusPublished, PostStatusFailed, PostStatusArchived, PostStatusDeleted},
	PostStatusPublished:  {PostStatusArchived, PostStatusDeleted},
	// failed is recoverable: same exits as draft so a post can be
	// regenerated, rescheduled, or published after the cause is fixed.
	PostStatusFailed:   {PostStatusGenerating, PostStatusScheduled, PostStatusPublished, PostStatusDraft, PostStatusArchived, PostStatusDeleted},
	PostStatusArchived: {PostStatusDraft, PostStatusDeleted},
	PostStatusDeleted:  {},
}

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// RequiresContent reports whether entering this status requires the
// post to have non-empty body content.
func (s PostStatus) RequiresContent() bool {
	return s == PostStatusPublished || s == PostStatusScheduled
}

// JobType enumerates the asynchronous operations tracked in the ledger.
type JobType string

const (
	JobTypeGenerateText     JobType = "generate_text"
	JobTypeGenerateImage    JobType = "generate_image"
	JobTypePublishScheduled JobType = "publish_scheduled"
)

// JobStatus enumerates ledger entry states. Jobs are created running
// and move to success or failed exactly once.
type JobStatus string

const (
	JobStatusQueued  JobStatus = "queued"
	JobStatusRunning JobStatus = "running"
	JobStatusSuccess JobStatus = "success"
	JobStatusFailed  JobStatus = "failed"
)

// Terminal reports whether the status can never change again.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSuccess || s == JobStatusFailed
}
