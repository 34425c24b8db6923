// Package analyzer infers project metadata from a repository: a
// language-percentage breakdown, per-ecosystem dependency lists, a
// depth-bounded structure sample and the key files that indicate project
// type. Results are built fresh per request and never cached.
package analyzer

import "github.com/blackwell-systems/reposcribe/internal/github"

// Result is the full analysis of one repository. Languages maps language
// name to an integer percentage of bytes (summing to exactly 100 when
// non-empty). Dependencies maps ecosystem name to the dependency names
// discovered in that ecosystem's manifests; every probed ecosystem has an
// entry even when its list is empty.
type Result struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Language       string              `json:"language"`
	Topics         []string            `json:"topics"`
	License        string              `json:"license,omitempty"`
	Languages      map[string]int      `json:"languages"`
	Dependencies   map[string][]string `json:"dependencies"`
	Structure      []github.TreeEntry  `json:"structure"`
	KeyFiles       []string            `json:"key_files"`
	HasReadme      bool                `json:"has_readme"`
	ExistingReadme string              `json:"existing_readme,omitempty"`
}

// keyFiles are the root-level files whose presence signals project type.
// Matched by exact name against top-level structure entries.
var keyFiles = []string{
	"package.json",
	"requirements.txt",
	"pyproject.toml",
	"Cargo.toml",
	"go.mod",
	"Gemfile",
	"pom.xml",
	"composer.json",
	"Dockerfile",
	"docker-compose.yml",
	"Makefile",
	"setup.py",
	"tsconfig.json",
	"next.config.js",
	"vite.config.js",
	"webpack.config.js",
	"tailwind.config.js",
	"jest.config.js",
}
