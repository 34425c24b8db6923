package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/reposcribe/internal/config"
	"github.com/blackwell-systems/reposcribe/internal/deploy"
	"github.com/blackwell-systems/reposcribe/internal/github"
)

// batchSource serves canned analysis inputs for one repository.
type batchSource struct {
	info    *github.RepoInfo
	infoErr error
}

func (s *batchSource) Repo(ctx context.Context, name string) (*github.RepoInfo, error) {
	return s.info, s.infoErr
}

func (s *batchSource) Languages(ctx context.Context, repo string) (map[string]int, error) {
	return map[string]int{}, nil
}

func (s *batchSource) FileContent(ctx context.Context, repo, path string) (*github.FileRef, error) {
	return nil, github.ErrNotFound
}

func (s *batchSource) Readme(ctx context.Context, repo string) (*github.FileRef, error) {
	return nil, github.ErrNotFound
}

func (s *batchSource) Walk(ctx context.Context, repo string) []github.TreeEntry {
	return nil
}

type recordingGenerator struct {
	prompt string
	text   string
}

func (g *recordingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, nil
}

func batchTestConfig() *config.Config {
	return &config.Config{
		GenerateTimeout: config.DefaultGenerateTimeout,
		Limits:          config.DefaultLimits,
	}
}

func TestBatchGenerate_ProducesReadmeWithoutCommitting(t *testing.T) {
	source := &batchSource{info: &github.RepoInfo{Name: "webapp", Language: "Python"}}
	gen := &recordingGenerator{text: "# webapp\n\nGenerated README.\n"}

	text, err := batchGenerate(context.Background(), batchTestConfig(), source,
		deploy.NewDetector(""), gen, "webapp")
	if err != nil {
		t.Fatalf("batchGenerate failed: %v", err)
	}

	if text != gen.text {
		t.Errorf("text = %q, want the generator output untouched", text)
	}
	if !strings.Contains(gen.prompt, "webapp") {
		t.Errorf("prompt does not mention the repository:\n%s", gen.prompt)
	}
}

func TestBatchGenerate_AnalysisFailureNamesTheStep(t *testing.T) {
	source := &batchSource{infoErr: errors.New("boom")}
	gen := &recordingGenerator{text: "unused"}

	_, err := batchGenerate(context.Background(), batchTestConfig(), source,
		deploy.NewDetector(""), gen, "webapp")
	if err == nil {
		t.Fatal("batchGenerate succeeded despite a failing repository fetch")
	}
	if !strings.Contains(err.Error(), "analyzing") {
		t.Errorf("error = %v, want the analyzing step named", err)
	}
	if gen.prompt != "" {
		t.Error("generator was invoked after the analysis failed")
	}
}
