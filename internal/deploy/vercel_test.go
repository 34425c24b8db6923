package deploy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// vercelStub serves /v9/projects and /v6/deployments with canned answers
// and counts project listing calls so caching is observable.
type vercelStub struct {
	projects     []map[string]any
	deployments  []map[string]any
	projectCalls atomic.Int64
}

func (v *vercelStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v9/projects":
			v.projectCalls.Add(1)
			json.NewEncoder(w).Encode(map[string]any{"projects": v.projects})
		case "/v6/deployments":
			json.NewEncoder(w).Encode(map[string]any{"deployments": v.deployments})
		default:
			http.NotFound(w, r)
		}
	}
}

func newTestDetector(t *testing.T, stub *vercelStub) *Detector {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	d := NewDetector("test-token")
	d.baseURL = srv.URL
	return d
}

func TestProjectURL_EmptyTokenReportsNothing(t *testing.T) {
	d := NewDetector("")
	if got := d.ProjectURL(context.Background(), "anything"); got != "" {
		t.Errorf("ProjectURL with empty token = %q, want empty", got)
	}
}

func TestProjectURL_MatchesProductionDeployment(t *testing.T) {
	stub := &vercelStub{
		projects: []map[string]any{
			{
				"id":   "prj_1",
				"name": "portfolio",
				"link": map[string]any{"type": "github", "repo": "octocat/portfolio"},
			},
		},
		deployments: []map[string]any{
			{"url": "portfolio-abc123.vercel.app"},
		},
	}
	d := newTestDetector(t, stub)

	got := d.ProjectURL(context.Background(), "portfolio")
	if got != "https://portfolio-abc123.vercel.app" {
		t.Errorf("ProjectURL = %q, want deployment URL", got)
	}
}

func TestProjectURL_FallsBackToProjectDomain(t *testing.T) {
	stub := &vercelStub{
		projects: []map[string]any{
			{"id": "prj_2", "name": "my-blog"},
		},
	}
	d := newTestDetector(t, stub)

	got := d.ProjectURL(context.Background(), "my-blog")
	if got != "https://my-blog.vercel.app" {
		t.Errorf("ProjectURL = %q, want https://my-blog.vercel.app", got)
	}
}

func TestProjectURL_NormalizedNameMatch(t *testing.T) {
	stub := &vercelStub{
		projects: []map[string]any{
			{"id": "prj_3", "name": "mycoolrepo"},
		},
	}
	d := newTestDetector(t, stub)

	got := d.ProjectURL(context.Background(), "My_Cool-Repo")
	if got != "https://mycoolrepo.vercel.app" {
		t.Errorf("ProjectURL = %q, want normalized-name match", got)
	}
}

func TestProjectURL_NoMatchReportsNothing(t *testing.T) {
	stub := &vercelStub{
		projects: []map[string]any{
			{"id": "prj_4", "name": "unrelated"},
		},
	}
	d := newTestDetector(t, stub)

	if got := d.ProjectURL(context.Background(), "portfolio"); got != "" {
		t.Errorf("ProjectURL with no matching project = %q, want empty", got)
	}
}

func TestProjectURL_SecondLookupServedFromCache(t *testing.T) {
	stub := &vercelStub{
		projects: []map[string]any{
			{"id": "prj_5", "name": "cached"},
		},
	}
	d := newTestDetector(t, stub)

	first := d.ProjectURL(context.Background(), "cached")
	second := d.ProjectURL(context.Background(), "cached")
	if first != second {
		t.Errorf("cached lookup diverged: %q vs %q", first, second)
	}
	if calls := stub.projectCalls.Load(); calls != 1 {
		t.Errorf("project listing called %d times, want 1", calls)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"My_Cool-Repo", "mycoolrepo"},
		{"already-lower", "alreadylower"},
		{"UPPER123", "upper123"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
