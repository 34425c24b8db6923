package health

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/blackwell-systems/reposcribe/internal/analyzer"
	"github.com/blackwell-systems/reposcribe/internal/github"
)

// ContentSource is the slice of the hosting client the security scan needs.
type ContentSource interface {
	FileContent(ctx context.Context, repo, path string) (*github.FileRef, error)
}

// secretFileNames are filenames that should never be committed. A tracked
// file matching one of these is a CRITICAL finding on its own, without
// reading its content. Matched against the lowercased basename.
var secretFileNames = []string{
	".env",
	".env.local",
	".env.production",
	".env.development",
	"credentials.json",
	"service-account.json",
	"secrets.yml",
	"secrets.yaml",
	".npmrc",
	".pypirc",
	"id_rsa",
	"id_dsa",
	"id_ecdsa",
	"id_ed25519",
}

// secretFileSuffixes extend the filename table with extension matches.
var secretFileSuffixes = []string{
	".pem",
	".p12",
	".pfx",
	".keystore",
}

// contentPattern classifies one secret-shaped content regex. Token patterns
// with a recognizable issuer prefix are CRITICAL; generic assignment shapes
// are advisory WARNINGs since they frequently hit test fixtures.
type contentPattern struct {
	Name     string
	Severity string
	Re       *regexp.Regexp
}

var contentPatterns = []contentPattern{
	{"AWS access key", SeverityCritical, regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"Google API key", SeverityCritical, regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)},
	{"GitHub token", SeverityCritical, regexp.MustCompile(`gh[pousr]_[0-9A-Za-z]{36,}`)},
	{"Slack token", SeverityCritical, regexp.MustCompile(`xox[baprs]-[0-9A-Za-z-]{10,}`)},
	{"private key block", SeverityCritical, regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`)},
	{"hardcoded secret assignment", SeverityWarning, regexp.MustCompile(`(?i)(?:api[_-]?key|secret|auth[_-]?token)\s*[:=]\s*["'][0-9A-Za-z_\-]{16,}["']`)},
	{"hardcoded password", SeverityWarning, regexp.MustCompile(`(?i)password\s*[:=]\s*["'][^"']{6,}["']`)},
}

// scanExtensions are the file types whose contents get pattern-scanned.
var scanExtensions = []string{
	".py", ".js", ".ts", ".jsx", ".tsx", ".go", ".rb", ".php", ".java",
	".yml", ".yaml", ".json", ".toml", ".ini", ".cfg", ".sh", ".tf",
}

// maxScannedFiles bounds how many file bodies one scan will fetch.
const maxScannedFiles = 20

// ScanSecurity inspects the analyzed structure for secret-shaped filenames
// and fetches a bounded set of tracked files to match against the content
// pattern table. Fetch failures skip the file; the scan itself never fails.
func ScanSecurity(ctx context.Context, source ContentSource, repo string, analysis *analyzer.Result) SecurityReport {
	report := SecurityReport{Issues: []Finding{}, Warnings: []Finding{}}

	paths := github.FlattenPaths(analysis.Structure)

	// Filename pass: committed secret-shaped files.
	for _, p := range paths {
		if isSecretFile(p) {
			report.Issues = append(report.Issues, Finding{
				Type:    SeverityCritical,
				File:    p,
				Message: "Secret-shaped file is committed to the repository",
			})
		}
	}

	// Content pass over a bounded sample of scannable files.
	scanned := 0
	for _, p := range paths {
		if scanned >= maxScannedFiles {
			break
		}
		if !isScannable(p) {
			continue
		}
		file, err := source.FileContent(ctx, repo, p)
		if err != nil {
			continue
		}
		scanned++

		for _, pattern := range contentPatterns {
			if !pattern.Re.MatchString(file.Content) {
				continue
			}
			finding := Finding{
				Type:    pattern.Severity,
				File:    p,
				Message: fmt.Sprintf("Content matches %s pattern", pattern.Name),
			}
			if pattern.Severity == SeverityCritical {
				report.Issues = append(report.Issues, finding)
			} else {
				report.Warnings = append(report.Warnings, finding)
			}
		}
	}

	report.HasCritical = len(report.Issues) > 0
	return report
}

func isSecretFile(p string) bool {
	base := baseName(p)
	for _, name := range secretFileNames {
		if base == name {
			return true
		}
	}
	for _, suffix := range secretFileSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

func isScannable(p string) bool {
	lower := strings.ToLower(p)
	for _, ext := range scanExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Evaluate runs the full health pipeline for an analyzed repository:
// check battery, score, grade and security scan.
func Evaluate(ctx context.Context, source ContentSource, repo string, analysis *analyzer.Result) *Report {
	checks := RunChecks(analysis)
	score := Score(checks)
	return &Report{
		Score:    score,
		Grade:    Grade(score),
		Checks:   checks,
		Security: ScanSecurity(ctx, source, repo, analysis),
	}
}
