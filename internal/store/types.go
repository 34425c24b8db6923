// Package store provides SQLite access for the opt-in health score
// history. Only the history command touches it; analysis itself is always
// computed fresh and never read from here.
package store

import "time"

// Snapshot represents one recorded run of health scoring.
type Snapshot struct {
	ID      int64     `json:"id"`
	TakenAt time.Time `json:"taken_at"`
	Command string    `json:"command"`
	Version string    `json:"version"`
}

// RepoScore represents a repository's health result within a snapshot.
type RepoScore struct {
	ID           int64  `json:"id"`
	SnapshotID   int64  `json:"snapshot_id"`
	Repo         string `json:"repo"`
	Score        int    `json:"score"`
	Grade        string `json:"grade"`
	HasReadme    bool   `json:"has_readme"`
	HasLicense   bool   `json:"has_license"`
	HasTests     bool   `json:"has_tests"`
	HasCI        bool   `json:"has_ci"`
	HasGitignore bool   `json:"has_gitignore"`
	Criticals    int    `json:"criticals"`
	Warnings     int    `json:"warnings"`
}

// ScoreDelta represents the change in one repository's score between two
// snapshots.
type ScoreDelta struct {
	Repo      string `json:"repo"`
	Previous  int    `json:"previous"`
	Current   int    `json:"current"`
	Delta     int    `json:"delta"`
	Direction string `json:"direction"` // "improved", "regressed", "unchanged"
}

// SnapshotDiff represents the comparison between two snapshots.
type SnapshotDiff struct {
	Previous *Snapshot    `json:"previous"`
	Current  *Snapshot    `json:"current"`
	Deltas   []ScoreDelta `json:"deltas"`
}
