package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
)

var (
	ErrNotFound    = errors.New("repository not found")
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrFetchFailed = errors.New("fetch failed")
)

// UpstreamError is a classified failure from the GitHub API
type UpstreamError struct {
	Kind       error
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string { return e.Message }

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is matches the kind sentinel so callers can use errors.Is(err, ErrNotFound)
func (e *UpstreamError) Is(target error) bool { return target == e.Kind }

// classify turns a go-github error into an UpstreamError. what names the
// resource for the generic failure message ("repository", "repository contents").
func classify(ref RepoRef, what string, resp *github.Response, err error) error {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	var rle *github.RateLimitError
	var abuse *github.AbuseRateLimitError
	switch {
	case errors.As(err, &rle), errors.As(err, &abuse), status == http.StatusForbidden, status == http.StatusTooManyRequests:
		return &UpstreamError{
			Kind:       ErrRateLimited,
			StatusCode: status,
			Message:    "Rate limit exceeded. Please add GITHUB_TOKEN for higher limits.",
			Err:        err,
		}
	case status == http.StatusNotFound:
		return &UpstreamError{
			Kind:       ErrNotFound,
			StatusCode: status,
			Message:    fmt.Sprintf("Repository not found: %s", ref),
			Err:        err,
		}
	default:
		text := http.StatusText(status)
		if status == 0 {
			text = err.Error()
		}
		return &UpstreamError{
			Kind:       ErrFetchFailed,
			StatusCode: status,
			Message:    fmt.Sprintf("Failed to fetch %s: %s", what, text),
			Err:        err,
		}
	}
}
