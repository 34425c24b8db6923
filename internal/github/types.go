// Package github wraps the GitHub REST API behind the small surface
// reposcribe needs: repository listing, structure walking, content fetches
// and optimistic-concurrency file commits.
package github

// RepoSummary is the per-repository row shown by listings. It is rebuilt on
// every listing request; nothing here is persisted.
type RepoSummary struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
	URL         string `json:"url"`
	HasReadme   bool   `json:"has_readme"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	Private     bool   `json:"private"`
	Fork        bool   `json:"fork"`
}

// RepoInfo carries the repository metadata consumed by analysis and
// prompt construction.
type RepoInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	License     string   `json:"license,omitempty"`
	HasReadme   bool     `json:"has_readme"`
}

// TreeEntry is one node of the depth-bounded structure tree. Directories own
// their children; files have none. The walker guarantees the tree never
// exceeds the configured depth and width caps.
type TreeEntry struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Type     string      `json:"type"` // "file" or "dir"
	Children []TreeEntry `json:"children,omitempty"`
}

// FileRef is a fetched file's content plus the blob SHA needed for an
// optimistic-concurrency update.
type FileRef struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
}
