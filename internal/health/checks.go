package health

import (
	"path"
	"strings"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/github"
)

// licenseNames are the filename variants accepted as a license file,
// compared case-insensitively against top-level entries.
var licenseNames = []string{
	"license",
	"license.md",
	"license.txt",
	"licence",
	"licence.md",
	"copying",
	"unlicense",
}

// testMarkers match a path segment that indicates test code.
var testMarkers = []string{
	"test",
	"tests",
	"spec",
	"specs",
	"__tests__",
}

// testSuffixes match a filename that indicates test code.
var testSuffixes = []string{
	"_test.go",
	"_test.py",
	".test.js",
	".test.ts",
	".test.jsx",
	".test.tsx",
	".spec.js",
	".spec.ts",
	".spec.rb",
}

// ciPaths match known CI configuration locations. Prefix match against the
// full path.
var ciPaths = []string{
	".github/workflows",
	".gitlab-ci.yml",
	".travis.yml",
	".circleci",
	"jenkinsfile",
	"azure-pipelines.yml",
	".drone.yml",
	"appveyor.yml",
}

// RunChecks evaluates the fixed, ordered battery against an analysis
// result. The battery is a pure function of its input, which is what makes
// the score deterministic and boundary-testable.
func RunChecks(analysis *analyzer.Result) []Check {
	paths := github.FlattenPaths(analysis.Structure)

	return []Check{
		{Name: "readme", Passed: analysis.HasReadme, Detail: "README present"},
		{Name: "license", Passed: hasLicense(analysis.Structure), Detail: "License file present"},
		{Name: "tests", Passed: hasTests(paths), Detail: "Test files or directories present"},
		{Name: "ci", Passed: hasCI(paths), Detail: "CI configuration present"},
		{Name: "gitignore", Passed: hasTopLevel(analysis.Structure, ".gitignore"), Detail: ".gitignore present"},
	}
}

func hasLicense(structure []github.TreeEntry) bool {
	for _, entry := range structure {
		name := strings.ToLower(entry.Name)
		for _, candidate := range licenseNames {
			if name == candidate {
				return true
			}
		}
	}
	return false
}

func hasTests(paths []string) bool {
	for _, p := range paths {
		lower := strings.ToLower(p)
		for _, suffix := range testSuffixes {
			if strings.HasSuffix(lower, suffix) {
				return true
			}
		}
		for _, segment := range strings.Split(lower, "/") {
			for _, marker := range testMarkers {
				if segment == marker {
					return true
				}
			}
		}
	}
	return false
}

func hasCI(paths []string) bool {
	for _, p := range paths {
		lower := strings.ToLower(p)
		for _, ci := range ciPaths {
			if lower == ci || strings.HasPrefix(lower, ci+"/") {
				return true
			}
		}
		// A workflow file implies the workflows directory even when the
		// walker's width cap hid the directory listing itself.
		if strings.HasPrefix(lower, ".github/workflows/") {
			return true
		}
	}
	return false
}

func hasTopLevel(structure []github.TreeEntry, name string) bool {
	for _, entry := range structure {
		if entry.Name == name {
			return true
		}
	}
	return false
}

// baseName returns the final path element, lowercased.
func baseName(p string) string {
	return strings.ToLower(path.Base(p))
}
