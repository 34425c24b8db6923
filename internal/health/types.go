// Package health scores repository hygiene. A fixed battery of presence
// checks yields a 0-100 score and letter grade, and a separate security
// scan flags secret-shaped files and suspicious content patterns. Reports
// are derived purely from analysis output plus targeted content fetches;
// nothing is persisted here.
package health

// Check is one pass/fail probe in the battery.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Finding severity tags.
const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
)

// Finding is a classified hit from the security scan.
type Finding struct {
	Type    string `json:"type"`
	File    string `json:"file"`
	Message string `json:"message"`
}

// SecurityReport separates hard issues from advisory warnings.
// HasCritical is true exactly when Issues is non-empty; warnings never
// set it.
type SecurityReport struct {
	Issues      []Finding `json:"issues"`
	Warnings    []Finding `json:"warnings"`
	HasCritical bool      `json:"has_critical"`
}

// Report is the aggregate health result for one repository.
type Report struct {
	Score    int            `json:"score"`
	Grade    string         `json:"grade"`
	Checks   []Check        `json:"checks"`
	Security SecurityReport `json:"security"`
}
