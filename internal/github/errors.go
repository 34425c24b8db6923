package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v75/github"
)

// Sentinel errors for the failure modes callers are expected to branch on.
// Everything else is surfaced as a wrapped transport/platform error.
var (
	// ErrNotFound means the repository, file or ref does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a write-back target changed since it was last read.
	// The caller must re-fetch and retry; it is never auto-resolved.
	ErrConflict = errors.New("conflict: content changed since last read")

	// ErrPermission means the token lacks write access to the target.
	ErrPermission = errors.New("no write permission")

	// ErrRateLimited means GitHub rejected the call due to rate limiting.
	ErrRateLimited = errors.New("rate limited by GitHub")
)

// classify maps a go-github error to the local taxonomy. Unrecognized
// errors are wrapped with the attempted operation for context.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%s: %w", op, ErrRateLimited)
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		case http.StatusConflict:
			return fmt.Errorf("%s: %w", op, ErrConflict)
		case http.StatusForbidden:
			// 403 is also how GitHub reports secondary rate limits.
			if ghErr.Response.Header.Get("X-RateLimit-Remaining") == "0" {
				return fmt.Errorf("%s: %w", op, ErrRateLimited)
			}
			return fmt.Errorf("%s: %w", op, ErrPermission)
		case http.StatusUnprocessableEntity:
			// Stale SHA on a contents update comes back as 422.
			return fmt.Errorf("%s: %w", op, ErrConflict)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// IsNotFound reports whether err is the not-found sentinel.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
