package readme

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/config"
	"github.com/blackwell-systems/reposcribe/internal/github"
)

func testLimits() config.Limits {
	return config.Limits{
		DepsPerEcosystem: 15,
		StructureLines:   30,
		ReadmeExcerpt:    2000,
	}
}

func TestBuildPrompt_CarriesAnalysis(t *testing.T) {
	analysis := &analyzer.Result{
		Name:        "webapp",
		Description: "A small web app",
		Language:    "Python",
		Topics:      []string{"flask", "web"},
		License:     "MIT License",
		Languages:   map[string]int{"Python": 75, "JavaScript": 25},
		Dependencies: map[string][]string{
			"python": {"flask", "requests"},
			"node":   {},
		},
		KeyFiles: []string{"Dockerfile"},
	}

	prompt := BuildPrompt(analysis, "https://webapp.vercel.app", testLimits())

	for _, want := range []string{
		"**Name**: webapp",
		"**Description**: A small web app",
		"Python (75%), JavaScript (25%)",
		"**python**: flask, requests",
		"flask, web",
		"MIT License",
		"Dockerfile",
		"Live Demo URL: https://webapp.vercel.app",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// Empty ecosystems never render a line.
	if strings.Contains(prompt, "**node**") {
		t.Error("prompt lists an ecosystem with no dependencies")
	}
}

func TestBuildPrompt_MissingFieldsGetPlaceholders(t *testing.T) {
	prompt := BuildPrompt(&analyzer.Result{}, "", testLimits())

	for _, want := range []string{
		"**Name**: Unknown",
		"**Description**: No description provided",
		"**Languages Used**: Unknown",
		"No dependencies detected",
		"Unable to fetch structure",
		"Placeholder for demo link",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing placeholder %q", want)
		}
	}
	if strings.Contains(prompt, "Live Demo URL") {
		t.Error("prompt mentions a live demo without a deployment URL")
	}
}

func TestBuildPrompt_DependenciesAreTruncated(t *testing.T) {
	deps := make([]string, 30)
	for i := range deps {
		deps[i] = "pkg" + string(rune('a'+i%26))
	}
	analysis := &analyzer.Result{
		Name:         "big",
		Dependencies: map[string][]string{"node": deps},
	}

	limits := testLimits()
	limits.DepsPerEcosystem = 5
	prompt := BuildPrompt(analysis, "", limits)

	line := ""
	for _, l := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(l, "**node**") {
			line = l
			break
		}
	}
	if line == "" {
		t.Fatal("node dependency line missing")
	}
	if got := strings.Count(line, ","); got != 4 {
		t.Errorf("node line lists %d+1 deps, want 5: %q", got, line)
	}
}

func TestBuildPrompt_StructureLinesAreCapped(t *testing.T) {
	var structure []github.TreeEntry
	for i := 0; i < 50; i++ {
		name := "file" + string(rune('a'+i%26))
		structure = append(structure, github.TreeEntry{Name: name, Path: name, Type: "file"})
	}
	analysis := &analyzer.Result{Name: "wide", Structure: structure}

	limits := testLimits()
	limits.StructureLines = 10
	prompt := BuildPrompt(analysis, "", limits)

	start := strings.Index(prompt, "## Project Structure\n")
	end := strings.Index(prompt, "## Dependencies")
	section := prompt[start:end]

	lines := 0
	for _, l := range strings.Split(section, "\n") {
		if strings.HasPrefix(l, "file") {
			lines++
		}
	}
	if lines != 10 {
		t.Errorf("structure section has %d entries, want 10", lines)
	}
}

func TestBuildPrompt_ExistingReadmeIsExcerpted(t *testing.T) {
	analysis := &analyzer.Result{
		Name:           "old",
		ExistingReadme: strings.Repeat("x", 5000),
	}

	limits := testLimits()
	limits.ReadmeExcerpt = 100
	prompt := BuildPrompt(analysis, "", limits)

	if strings.Contains(prompt, strings.Repeat("x", 101)) {
		t.Error("existing README excerpt exceeds the configured limit")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 100)) {
		t.Error("existing README excerpt missing entirely")
	}
}
