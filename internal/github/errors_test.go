package github

import (
	"errors"
	"net/http"
	"testing"

	gh "github.com/google/go-github/v75/github"
)

func responseWithStatus(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Request:    &http.Request{},
	}
}

func TestClassify_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusForbidden, ErrPermission},
		{http.StatusUnprocessableEntity, ErrConflict},
	}

	for _, tc := range cases {
		err := classify("op", &gh.ErrorResponse{Response: responseWithStatus(tc.status)})
		if !errors.Is(err, tc.want) {
			t.Errorf("classify(status %d) = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestClassify_ExhaustedRateLimitIs403(t *testing.T) {
	resp := responseWithStatus(http.StatusForbidden)
	resp.Header.Set("X-RateLimit-Remaining", "0")

	err := classify("op", &gh.ErrorResponse{Response: resp})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("classify(403, remaining=0) = %v, want ErrRateLimited", err)
	}
}

func TestClassify_RateLimitError(t *testing.T) {
	err := classify("op", &gh.RateLimitError{Response: responseWithStatus(http.StatusForbidden)})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("classify(RateLimitError) = %v, want ErrRateLimited", err)
	}
}

func TestClassify_UnknownErrorIsWrapped(t *testing.T) {
	base := errors.New("connection reset")
	err := classify("listing repositories", base)
	if !errors.Is(err, base) {
		t.Errorf("classify did not preserve the underlying error: %v", err)
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		t.Errorf("unknown error mapped to a sentinel: %v", err)
	}
}

func TestClassify_Nil(t *testing.T) {
	if err := classify("op", nil); err != nil {
		t.Errorf("classify(nil) = %v, want nil", err)
	}
}
