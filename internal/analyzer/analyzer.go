package analyzer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/reposcribe/internal/github"
)

// Source is the slice of the hosting client the analyzer consumes.
// *github.Client satisfies it.
type Source interface {
	Repo(ctx context.Context, name string) (*github.RepoInfo, error)
	Languages(ctx context.Context, repo string) (map[string]int, error)
	FileContent(ctx context.Context, repo, path string) (*github.FileRef, error)
	Readme(ctx context.Context, repo string) (*github.FileRef, error)
	Walk(ctx context.Context, repo string) []github.TreeEntry
}

// Analyzer runs the structure, language and dependency analysis for a
// repository. It is stateless; one Analyzer can serve concurrent requests.
type Analyzer struct {
	source Source
}

// New returns an Analyzer reading from the given source.
func New(source Source) *Analyzer {
	return &Analyzer{source: source}
}

// Analyze builds a Result for the named repository. The repository metadata
// fetch is the one required step: if the repository itself cannot be read
// the analysis fails. Every other sub-step (languages, structure, README,
// each manifest probe) is independent and degrades to an empty value on
// failure, so a single broken enrichment never sinks the analysis.
func (a *Analyzer) Analyze(ctx context.Context, repo string) (*Result, error) {
	info, err := a.source.Repo(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", repo, err)
	}

	result := &Result{
		Name:        info.Name,
		Description: info.Description,
		Language:    info.Language,
		Topics:      info.Topics,
		License:     info.License,
		HasReadme:   info.HasReadme,
	}

	// The remaining lookups are independent, so they run concurrently and
	// join here. Branches record into distinct fields and swallow their own
	// failures; the group never returns an error.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		byteCounts, err := a.source.Languages(gctx, repo)
		if err != nil {
			byteCounts = nil
		}
		result.Languages = Percentages(byteCounts)
		return nil
	})

	g.Go(func() error {
		result.Structure = a.source.Walk(gctx, repo)
		return nil
	})

	g.Go(func() error {
		if readme, err := a.source.Readme(gctx, repo); err == nil {
			result.ExistingReadme = readme.Content
		}
		return nil
	})

	deps := make(map[string][]string, len(Ecosystems()))
	g.Go(func() error {
		a.probeManifests(gctx, repo, deps)
		return nil
	})

	_ = g.Wait()

	result.Dependencies = deps
	result.KeyFiles = identifyKeyFiles(result.Structure)
	return result, nil
}

// probeManifests fetches and parses every manifest in the probe table,
// bucketing dependency names by ecosystem. Absent manifests are skipped
// silently; a manifest that fetches but fails to parse contributes an empty
// list. Every probed ecosystem ends up with a non-nil entry.
func (a *Analyzer) probeManifests(ctx context.Context, repo string, deps map[string][]string) {
	for _, name := range Ecosystems() {
		deps[name] = []string{}
	}
	for _, probe := range manifestProbes {
		file, err := a.source.FileContent(ctx, repo, probe.Path)
		if err != nil {
			continue
		}
		deps[probe.Ecosystem] = append(deps[probe.Ecosystem], probe.Parse(file.Content)...)
	}
}

// identifyKeyFiles matches top-level structure entries against the key-file
// table, plus the CI workflows directory one level down.
func identifyKeyFiles(structure []github.TreeEntry) []string {
	var found []string
	for _, entry := range structure {
		for _, name := range keyFiles {
			if entry.Name == name {
				found = append(found, name)
			}
		}
		if entry.Type == "dir" && entry.Name == ".github" {
			for _, child := range entry.Children {
				if child.Name == "workflows" {
					found = append(found, ".github/workflows")
				}
			}
		}
	}
	return found
}
