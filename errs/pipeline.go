package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	Unauthorized = NewApiErr(http.StatusUnauthorized, "unauthorized")
)

// Authentication & Authorization Errors
var (
	ErrMissingToken     = errors.New("missing access token")
	ErrInvalidToken     = errors.New("invalid access token")
	ErrInsufficientRole = errors.New("insufficient role")
)

// Content pipeline errors. These cover the blog post lifecycle: gateway
// throttling and garbage output, publish-time invariant violations,
// storage upload failures, and programming errors against the job ledger
// and the status transition table.
var (
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrMalformedResponse = errors.New("malformed generation response")
	ErrSlugConflict      = errors.New("slug conflict")
	ErrIncompletePost    = errors.New("post missing required content")
	ErrStorageUpload     = errors.New("storage upload failed")
	ErrJobTerminal       = errors.New("job already in terminal state")
	ErrBadTransition     = errors.New("invalid status transition")
)

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Missing access token",
		Field:      "authorization",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidToken,
		Details:    "Invalid access token",
		Field:      "authorization",
	}
}

func NewInsufficientRoleError(requiredRole string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrInsufficientRole,
		Details:    fmt.Sprintf("Insufficient role. Required: %s", requiredRole),
		Field:      "authorization",
	}
}

func NewRateLimitedError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimited,
		Details:    "Rate limit exceeded. Please try again later.",
	}
}

func NewMalformedResponseError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrMalformedResponse,
		Details:    "The generation service returned an unparseable response",
		Cause:      cause,
	}
}

// NewSlugConflictError names the colliding slug so an operator can fix it.
func NewSlugConflictError(slug string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%w: slug %q already exists", ErrSlugConflict, slug),
		Field:      "slug",
	}
}

func NewIncompletePostError(detail string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrIncompletePost,
		Details:    detail,
	}
}

func NewStorageError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageUpload,
		Cause:      cause,
	}
}

func NewJobTerminalError(jobID string, status string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrJobTerminal,
		Details:    fmt.Sprintf("Job %s is already %s", jobID, status),
	}
}

func NewBadTransitionError(from, to string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrBadTransition,
		Details:    fmt.Sprintf("Cannot move post from %s to %s", from, to),
		Field:      "status",
	}
}

// Type checkers kept for call sites that don't want to import errors.

func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

func IsSlugConflict(err error) bool {
	return errors.Is(err, ErrSlugConflict)
}

func IsIncompletePost(err error) bool {
	return errors.Is(err, ErrIncompletePost)
}

func IsJobTerminal(err error) bool {
	return errors.Is(err, ErrJobTerminal)
}
