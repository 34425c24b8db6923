package analyzer

import (
	"bufio"
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

// manifestParser extracts dependency names from one manifest file's content.
// Parsers return only what they can read; a manifest that fails to parse
// contributes nothing rather than an error.
type manifestParser func(content string) []string

// manifestProbe binds a manifest path to its ecosystem and parse strategy.
// The probe set is a fixed declarative table so the rule set can be tested
// independently of any fetching.
type manifestProbe struct {
	Ecosystem string
	Path      string
	Parse     manifestParser
}

// manifestProbes is the fixed set of manifests the analyzer looks for.
// Order matters only within an ecosystem: names are collected in the order
// the probes run.
var manifestProbes = []manifestProbe{
	{"node", "package.json", parsePackageJSON},
	{"python", "requirements.txt", parseRequirements},
	{"python", "pyproject.toml", parsePyProject},
	{"python", "Pipfile", parsePipfile},
	{"go", "go.mod", parseGoMod},
	{"rust", "Cargo.toml", parseCargoToml},
	{"ruby", "Gemfile", parseGemfile},
	{"java", "pom.xml", parsePomXML},
	{"php", "composer.json", parseComposerJSON},
}

// Ecosystems returns the distinct ecosystem names in probe order. The
// dependency mapping always carries one entry per name returned here.
func Ecosystems() []string {
	var names []string
	seen := map[string]bool{}
	for _, p := range manifestProbes {
		if !seen[p.Ecosystem] {
			seen[p.Ecosystem] = true
			names = append(names, p.Ecosystem)
		}
	}
	return names
}

// parsePackageJSON collects dependency and devDependency names. Names are
// sorted within each block because JSON object order is not preserved.
func parsePackageJSON(content string) []string {
	var raw struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil
	}
	return append(sortedKeys(raw.Dependencies), sortedKeys(raw.DevDependencies)...)
}

// parseComposerJSON collects require and require-dev package names,
// skipping the php platform pseudo-package and extension constraints.
func parseComposerJSON(content string) []string {
	var raw struct {
		Require    map[string]string `json:"require"`
		RequireDev map[string]string `json:"require-dev"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil
	}

	var deps []string
	for _, name := range append(sortedKeys(raw.Require), sortedKeys(raw.RequireDev)...) {
		if name == "php" || strings.HasPrefix(name, "ext-") {
			continue
		}
		deps = append(deps, name)
	}
	return deps
}

// parseRequirements extracts package names from a requirements.txt,
// stripping version specifiers and extras.
func parseRequirements(content string) []string {
	var deps []string
	for _, line := range lines(content) {
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		name := line
		for _, sep := range []string{"==", ">=", "<=", "~=", ">", "<", "[", ";", " "} {
			if idx := strings.Index(name, sep); idx >= 0 {
				name = name[:idx]
			}
		}
		if name = strings.TrimSpace(name); name != "" {
			deps = append(deps, name)
		}
	}
	return deps
}

// parsePyProject extracts names from the dependencies array of a
// pyproject.toml using line patterns (no full TOML parse: quoted entries
// inside the array are enough for name extraction).
func parsePyProject(content string) []string {
	var deps []string
	inDeps := false
	for _, line := range lines(content) {
		switch {
		case strings.HasPrefix(line, "dependencies") && strings.Contains(line, "="):
			inDeps = true
		case inDeps && strings.HasPrefix(line, "]"):
			inDeps = false
		case inDeps:
			if name := quotedName(line); name != "" {
				deps = append(deps, name)
			}
		}
	}
	return deps
}

// parsePipfile extracts names from the [packages] section of a Pipfile.
func parsePipfile(content string) []string {
	var deps []string
	inPackages := false
	for _, line := range lines(content) {
		switch {
		case line == "[packages]":
			inPackages = true
		case strings.HasPrefix(line, "["):
			inPackages = false
		case inPackages && strings.Contains(line, "="):
			name := strings.TrimSpace(strings.SplitN(line, "=", 2)[0])
			name = strings.Trim(name, `"`)
			if name != "" {
				deps = append(deps, name)
			}
		}
	}
	return deps
}

// parseGoMod extracts module paths from require lines and require blocks.
func parseGoMod(content string) []string {
	var deps []string
	inBlock := false
	for _, line := range lines(content) {
		switch {
		case strings.HasPrefix(line, "require ("):
			inBlock = true
		case inBlock && line == ")":
			inBlock = false
		case inBlock || strings.HasPrefix(line, "require "):
			fields := strings.Fields(strings.TrimPrefix(line, "require "))
			if len(fields) >= 2 && strings.Contains(fields[0], "/") {
				deps = append(deps, fields[0])
			}
		}
	}
	return deps
}

// parseCargoToml extracts crate names from the [dependencies] section.
func parseCargoToml(content string) []string {
	var deps []string
	inDeps := false
	for _, line := range lines(content) {
		switch {
		case line == "[dependencies]":
			inDeps = true
		case strings.HasPrefix(line, "["):
			inDeps = false
		case inDeps && strings.Contains(line, "="):
			name := strings.TrimSpace(strings.SplitN(line, "=", 2)[0])
			if name != "" {
				deps = append(deps, name)
			}
		}
	}
	return deps
}

// parseGemfile extracts gem names from gem 'name' lines.
func parseGemfile(content string) []string {
	var deps []string
	for _, line := range lines(content) {
		if !strings.HasPrefix(line, "gem ") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, "gem "))
		if len(rest) < 2 {
			continue
		}
		quote := rest[0]
		if quote != '\'' && quote != '"' {
			continue
		}
		if end := strings.IndexByte(rest[1:], quote); end >= 0 {
			deps = append(deps, rest[1:1+end])
		}
	}
	return deps
}

var artifactIDPattern = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)

// pomArtifactLimit caps pom.xml extraction to avoid plugin noise.
const pomArtifactLimit = 20

// parsePomXML extracts artifact IDs from a pom.xml. This deliberately reads
// every artifactId (including the project's own) and caps the count; full
// POM resolution is out of scope.
func parsePomXML(content string) []string {
	var deps []string
	for _, match := range artifactIDPattern.FindAllStringSubmatch(content, pomArtifactLimit) {
		deps = append(deps, match[1])
	}
	return deps
}

func lines(content string) []string {
	var out []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		out = append(out, strings.TrimSpace(scanner.Text()))
	}
	return out
}

func quotedName(line string) string {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return ""
	}
	rest := line[start+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return ""
	}
	name := rest[:end]
	for _, sep := range []string{">=", "==", "<=", "~=", ">", "<", "[", " "} {
		if idx := strings.Index(name, sep); idx >= 0 {
			name = name[:idx]
		}
	}
	return strings.TrimSpace(name)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
