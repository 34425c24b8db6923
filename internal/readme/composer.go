package readme

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/config"
)

// Composer pairs a prompt builder with a Generator.
type Composer struct {
	generator Generator
	limits    config.Limits
}

// NewComposer returns a Composer using the given generator and truncation
// limits.
func NewComposer(generator Generator, limits config.Limits) *Composer {
	return &Composer{generator: generator, limits: limits}
}

// Compose builds the prompt for the analysis (and optional deployment URL)
// and returns the generated README text verbatim.
func (c *Composer) Compose(ctx context.Context, analysis *analyzer.Result, deployURL string) (string, error) {
	prompt := BuildPrompt(analysis, deployURL, c.limits)
	text, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("composing README for %s: %w", analysis.Name, err)
	}
	return text, nil
}
