package github

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v75/github"
)

// commitServer fakes the contents write endpoint. It records the last
// request body and answers with the configured status.
type commitServer struct {
	status   int
	lastBody map[string]any
}

func (cs *commitServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.NotFound(w, r)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err)
		}
		cs.lastBody = map[string]any{}
		if err := json.Unmarshal(body, &cs.lastBody); err != nil {
			t.Fatalf("unmarshaling commit body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		if cs.status != http.StatusOK && cs.status != http.StatusCreated {
			w.WriteHeader(cs.status)
			json.NewEncoder(w).Encode(map[string]string{"message": "write rejected"})
			return
		}
		w.WriteHeader(cs.status)
		json.NewEncoder(w).Encode(map[string]any{"content": map[string]string{"sha": "newsha"}})
	}
}

func newCommitClient(t *testing.T, cs *commitServer) *Client {
	t.Helper()
	srv := httptest.NewServer(cs.handler(t))
	t.Cleanup(srv.Close)

	ghc := gh.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	ghc.BaseURL = base
	return &Client{gh: ghc, login: "octocat"}
}

func TestCommitFile_CreateOmitsSHA(t *testing.T) {
	cs := &commitServer{status: http.StatusCreated}
	client := newCommitClient(t, cs)

	err := client.CommitFile(context.Background(), "demo", "README.md", "# demo\n", "Add README", "")
	if err != nil {
		t.Fatalf("CommitFile create failed: %v", err)
	}
	if _, hasSHA := cs.lastBody["sha"]; hasSHA {
		t.Error("create request carried a sha field")
	}
	if cs.lastBody["message"] != "Add README" {
		t.Errorf("message = %v, want Add README", cs.lastBody["message"])
	}
}

func TestCommitFile_UpdateSendsPriorSHA(t *testing.T) {
	cs := &commitServer{status: http.StatusOK}
	client := newCommitClient(t, cs)

	err := client.CommitFile(context.Background(), "demo", "README.md", "# demo\n", "Update README", "abc123")
	if err != nil {
		t.Fatalf("CommitFile update failed: %v", err)
	}
	if cs.lastBody["sha"] != "abc123" {
		t.Errorf("sha = %v, want abc123", cs.lastBody["sha"])
	}
}

func TestCommitFile_StaleSHAIsConflict(t *testing.T) {
	// GitHub answers 409 when the SHA no longer matches the current blob.
	cs := &commitServer{status: http.StatusConflict}
	client := newCommitClient(t, cs)

	err := client.CommitFile(context.Background(), "demo", "README.md", "# demo\n", "Update README", "stale")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("stale SHA commit = %v, want ErrConflict", err)
	}
}

func TestCommitFile_422IsConflict(t *testing.T) {
	cs := &commitServer{status: http.StatusUnprocessableEntity}
	client := newCommitClient(t, cs)

	err := client.CommitFile(context.Background(), "demo", "README.md", "# demo\n", "Update README", "stale")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("422 commit = %v, want ErrConflict", err)
	}
}

func TestCommitFile_NoWriteAccess(t *testing.T) {
	cs := &commitServer{status: http.StatusForbidden}
	client := newCommitClient(t, cs)

	err := client.CommitFile(context.Background(), "demo", "README.md", "# demo\n", "Update README", "abc123")
	if !errors.Is(err, ErrPermission) {
		t.Errorf("forbidden commit = %v, want ErrPermission", err)
	}
}
