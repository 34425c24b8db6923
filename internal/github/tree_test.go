package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	gh "github.com/google/go-github/v75/github"
)

type fakeEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// newTestClient points a Client at a fake GitHub contents API serving the
// given directory listings. The login is pre-cached so no /user call is
// made.
func newTestClient(t *testing.T, listings map[string][]fakeEntry) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "/repos/octocat/demo/contents/"
		if !strings.HasPrefix(r.URL.Path, prefix) {
			http.NotFound(w, r)
			return
		}
		dir := strings.TrimPrefix(r.URL.Path, prefix)
		entries, ok := listings[dir]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}))
	t.Cleanup(srv.Close)

	ghc := gh.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	ghc.BaseURL = base

	return &Client{gh: ghc, login: "octocat"}
}

func TestWalk_DepthIsCapped(t *testing.T) {
	listings := map[string][]fakeEntry{
		"": {
			{Name: "a", Path: "a", Type: "dir"},
			{Name: "top.txt", Path: "top.txt", Type: "file"},
		},
		"a":     {{Name: "b", Path: "a/b", Type: "dir"}},
		"a/b":   {{Name: "c", Path: "a/b/c", Type: "dir"}},
		"a/b/c": {{Name: "deep.txt", Path: "a/b/c/deep.txt", Type: "file"}},
	}
	client := newTestClient(t, listings)
	client.TreeDepth = 2

	tree := client.Walk(context.Background(), "demo")

	if got := MaxDepth(tree); got > 2 {
		t.Errorf("MaxDepth = %d, want at most 2", got)
	}
	paths := FlattenPaths(tree)
	for _, p := range paths {
		if p == "a/b/c/deep.txt" {
			t.Error("walk descended past the depth cap")
		}
	}
}

func TestWalk_WidthIsCapped(t *testing.T) {
	var root []fakeEntry
	for i := 0; i < 30; i++ {
		name := fmt.Sprintf("file%02d.txt", i)
		root = append(root, fakeEntry{Name: name, Path: name, Type: "file"})
	}
	listings := map[string][]fakeEntry{"": root}
	client := newTestClient(t, listings)
	client.TreeWidth = 20

	tree := client.Walk(context.Background(), "demo")

	if len(tree) != 20 {
		t.Errorf("got %d top-level entries, want width cap of 20", len(tree))
	}
}

func TestWalk_DirectoriesSortFirst(t *testing.T) {
	listings := map[string][]fakeEntry{
		"": {
			{Name: "zzz.txt", Path: "zzz.txt", Type: "file"},
			{Name: "src", Path: "src", Type: "dir"},
			{Name: "aaa.txt", Path: "aaa.txt", Type: "file"},
			{Name: "internal", Path: "internal", Type: "dir"},
		},
		"src":      {},
		"internal": {},
	}
	client := newTestClient(t, listings)

	tree := client.Walk(context.Background(), "demo")

	wantOrder := []string{"internal", "src", "aaa.txt", "zzz.txt"}
	if len(tree) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(tree), len(wantOrder))
	}
	for i, name := range wantOrder {
		if tree[i].Name != name {
			t.Errorf("tree[%d] = %q, want %q", i, tree[i].Name, name)
		}
	}
}

func TestWalk_UnreadableRepoYieldsEmpty(t *testing.T) {
	client := newTestClient(t, map[string][]fakeEntry{})

	tree := client.Walk(context.Background(), "demo")
	if len(tree) != 0 {
		t.Errorf("got %d entries for an unreadable repo, want 0", len(tree))
	}
}

func TestFlattenPaths(t *testing.T) {
	tree := []TreeEntry{
		{Name: "src", Path: "src", Type: "dir", Children: []TreeEntry{
			{Name: "main.go", Path: "src/main.go", Type: "file"},
		}},
		{Name: "README.md", Path: "README.md", Type: "file"},
	}

	got := FlattenPaths(tree)
	want := []string{"src", "src/main.go", "README.md"}
	if len(got) != len(want) {
		t.Fatalf("FlattenPaths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FlattenPaths[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
