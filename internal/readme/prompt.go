// Package readme turns an analysis result into a generation prompt and
// delegates to a text-generation model. The model's output is returned
// verbatim; rendering and validation are the caller's concern.
package readme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/config"
	"github.com/blackwell-systems/reposcribe/internal/github"
)

// BuildPrompt assembles the structured generation prompt: repository
// metadata, language percentages, per-ecosystem dependencies, a structure
// listing and the deployment URL when known. Each enumeration is truncated
// per the configured limits to keep prompt size bounded.
func BuildPrompt(analysis *analyzer.Result, deployURL string, limits config.Limits) string {
	var sb strings.Builder

	sb.WriteString("Generate a professional README.md for a GitHub repository with the following details:\n\n")

	sb.WriteString("## Repository Information\n")
	fmt.Fprintf(&sb, "- **Name**: %s\n", orUnknown(analysis.Name))
	fmt.Fprintf(&sb, "- **Description**: %s\n", orDefault(analysis.Description, "No description provided"))
	fmt.Fprintf(&sb, "- **Primary Language**: %s\n", orUnknown(analysis.Language))
	fmt.Fprintf(&sb, "- **Languages Used**: %s\n", formatLanguages(analysis.Languages))
	fmt.Fprintf(&sb, "- **Topics/Tags**: %s\n", orDefault(strings.Join(analysis.Topics, ", "), "None"))
	fmt.Fprintf(&sb, "- **License**: %s\n\n", orDefault(analysis.License, "Not specified"))

	sb.WriteString("## Project Structure\n")
	sb.WriteString(formatStructure(analysis.Structure, limits.StructureLines))
	sb.WriteString("\n\n")

	sb.WriteString("## Dependencies\n")
	sb.WriteString(formatDependencies(analysis.Dependencies, limits.DepsPerEcosystem))
	sb.WriteString("\n\n")

	sb.WriteString("## Key Files Detected\n")
	sb.WriteString(orDefault(strings.Join(analysis.KeyFiles, ", "), "None"))
	sb.WriteString("\n\n")

	if analysis.ExistingReadme != "" {
		sb.WriteString("## Existing README Content (for reference, improve upon it)\n")
		sb.WriteString(truncate(analysis.ExistingReadme, limits.ReadmeExcerpt))
		sb.WriteString("\n\n")
	}

	if deployURL != "" {
		fmt.Fprintf(&sb, "## Live Demo URL: %s\n\n", deployURL)
	}

	sb.WriteString(`---

Generate a comprehensive README.md that includes:
1. A clear project title with appropriate badges (build status, license, language)
2. A concise but informative description
3. Key features (infer from the code structure and dependencies)
4. Tech stack section with icons/badges
5. Prerequisites and installation instructions
6. Usage examples with code snippets
`)
	if deployURL != "" {
		fmt.Fprintf(&sb, "7. Live demo section with the URL: %s\n", deployURL)
	} else {
		sb.WriteString("7. Placeholder for demo link\n")
	}
	sb.WriteString(`8. Contributing guidelines (brief)
9. License information

Use proper markdown formatting. Make it visually appealing with appropriate headers, code blocks, and badges.
Keep it professional and developer-friendly.
Do NOT include any explanatory text before or after the README - output ONLY the README content.
`)

	return sb.String()
}

// formatLanguages renders "Go (80%), Shell (20%)" ordered by percentage
// descending, name ascending on ties.
func formatLanguages(languages map[string]int) string {
	if len(languages) == 0 {
		return "Unknown"
	}
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (%d%%)", name, languages[name]))
	}
	return strings.Join(parts, ", ")
}

// formatDependencies renders one line per non-empty ecosystem with the
// dependency list truncated to maxPerEcosystem names.
func formatDependencies(deps map[string][]string, maxPerEcosystem int) string {
	ecosystems := make([]string, 0, len(deps))
	for name := range deps {
		ecosystems = append(ecosystems, name)
	}
	sort.Strings(ecosystems)

	var lines []string
	for _, eco := range ecosystems {
		names := deps[eco]
		if len(names) == 0 {
			continue
		}
		if len(names) > maxPerEcosystem {
			names = names[:maxPerEcosystem]
		}
		lines = append(lines, fmt.Sprintf("**%s**: %s", eco, strings.Join(names, ", ")))
	}
	if len(lines) == 0 {
		return "No dependencies detected"
	}
	return strings.Join(lines, "\n")
}

// formatStructure renders the tree as an indented listing capped at
// maxLines entries.
func formatStructure(structure []github.TreeEntry, maxLines int) string {
	if len(structure) == 0 {
		return "Unable to fetch structure"
	}

	var lines []string
	var walk func(entries []github.TreeEntry, indent string)
	walk = func(entries []github.TreeEntry, indent string) {
		for _, entry := range entries {
			if len(lines) >= maxLines {
				return
			}
			marker := ""
			if entry.Type == "dir" {
				marker = "/"
			}
			lines = append(lines, indent+entry.Name+marker)
			if len(entry.Children) > 0 {
				walk(entry.Children, indent+"  ")
			}
		}
	}
	walk(structure, "")
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func orUnknown(s string) string { return orDefault(s, "Unknown") }

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
