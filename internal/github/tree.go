package github

import (
	"context"
	"sort"

	gh "github.com/google/go-github/v75/github"

	"github.com/blackwell-systems/reposcribe/internal/config"
)

// Walk returns a bounded sample of the repository's file structure. Both the
// recursion depth and the number of entries expanded per directory are
// capped, so the result is a representative sample for display and
// prompting, not an exhaustive listing. An empty or unreadable repository
// yields an empty slice, never an error: structure is best-effort
// enrichment and must not sink the surrounding analysis.
func (c *Client) Walk(ctx context.Context, repo string) []TreeEntry {
	owner, err := c.Login(ctx)
	if err != nil {
		return nil
	}
	return c.walkDir(ctx, owner, repo, "", 0)
}

func (c *Client) walkDir(ctx context.Context, owner, repo, path string, depth int) []TreeEntry {
	maxDepth := c.TreeDepth
	if maxDepth == 0 {
		maxDepth = config.DefaultTreeDepth
	}
	maxWidth := c.TreeWidth
	if maxWidth == 0 {
		maxWidth = config.DefaultTreeWidth
	}

	if depth > maxDepth {
		return nil
	}

	_, dir, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil || dir == nil {
		return nil
	}

	// Directories first, then files, both alphabetical, so truncation keeps
	// the most structurally informative entries.
	sort.SliceStable(dir, func(i, j int) bool {
		if dir[i].GetType() != dir[j].GetType() {
			return dir[i].GetType() == "dir"
		}
		return dir[i].GetName() < dir[j].GetName()
	})

	var entries []TreeEntry
	for _, item := range dir {
		if len(entries) >= maxWidth {
			break
		}
		entry := TreeEntry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Type: normalizeKind(item),
		}
		if entry.Type == "dir" && depth < maxDepth {
			entry.Children = c.walkDir(ctx, owner, repo, item.GetPath(), depth+1)
		}
		entries = append(entries, entry)
	}
	return entries
}

func normalizeKind(item *gh.RepositoryContent) string {
	if item.GetType() == "dir" {
		return "dir"
	}
	return "file"
}

// FlattenPaths returns every path in the tree, depth-first. Health checks
// match against this list.
func FlattenPaths(entries []TreeEntry) []string {
	var paths []string
	var walk func([]TreeEntry)
	walk = func(nodes []TreeEntry) {
		for _, n := range nodes {
			paths = append(paths, n.Path)
			if len(n.Children) > 0 {
				walk(n.Children)
			}
		}
	}
	walk(entries)
	return paths
}

// MaxDepth returns the depth of the deepest node, with top-level entries at
// depth zero. Used to verify the walker's depth cap.
func MaxDepth(entries []TreeEntry) int {
	deepest := -1
	var walk func([]TreeEntry, int)
	walk = func(nodes []TreeEntry, depth int) {
		for _, n := range nodes {
			if depth > deepest {
				deepest = depth
			}
			if len(n.Children) > 0 {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(entries, 0)
	return deepest
}
