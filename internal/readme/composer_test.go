package readme

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
)

// scriptedGenerator returns a fixed response and records the prompt it saw.
type scriptedGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestCompose_ReturnsModelOutputVerbatim(t *testing.T) {
	gen := &scriptedGenerator{response: "# webapp\n\nGenerated.\n"}
	composer := NewComposer(gen, testLimits())

	got, err := composer.Compose(context.Background(), &analyzer.Result{Name: "webapp"}, "")
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if got != gen.response {
		t.Errorf("Compose = %q, want model output verbatim", got)
	}
	if !strings.Contains(gen.prompt, "**Name**: webapp") {
		t.Error("generator did not receive the built prompt")
	}
}

func TestCompose_DeployURLReachesPrompt(t *testing.T) {
	gen := &scriptedGenerator{response: "# demo"}
	composer := NewComposer(gen, testLimits())

	_, err := composer.Compose(context.Background(), &analyzer.Result{Name: "demo"}, "https://demo.vercel.app")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(gen.prompt, "https://demo.vercel.app") {
		t.Error("deployment URL missing from prompt")
	}
}

func TestCompose_GeneratorErrorIsWrapped(t *testing.T) {
	gen := &scriptedGenerator{err: ErrEmptyResponse}
	composer := NewComposer(gen, testLimits())

	_, err := composer.Compose(context.Background(), &analyzer.Result{Name: "flaky"}, "")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Compose error = %v, want ErrEmptyResponse", err)
	}
	if err == nil || !strings.Contains(err.Error(), "flaky") {
		t.Errorf("error does not name the repository: %v", err)
	}
}
