package store

import (
	"database/sql"
	"sort"
	"time"
)

// CreateSnapshot inserts a new snapshot and returns its ID.
func (db *DB) CreateSnapshot(command, version string) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO snapshots (taken_at, command, version) VALUES (?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), command, version,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLatestSnapshot returns the most recent snapshot, or nil if none exist.
func (db *DB) GetLatestSnapshot() (*Snapshot, error) {
	row := db.conn.QueryRow("SELECT id, taken_at, command, version FROM snapshots ORDER BY id DESC LIMIT 1")
	return scanSnapshot(row)
}

// GetSnapshotN returns the Nth most recent snapshot (1 = latest, 2 = previous, etc.).
func (db *DB) GetSnapshotN(n int) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, command, version FROM snapshots ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Command, &s.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

// InsertRepoScore inserts a repository health score for a snapshot.
func (db *DB) InsertRepoScore(rs *RepoScore) error {
	_, err := db.conn.Exec(
		`INSERT INTO repo_scores
		(snapshot_id, repo, score, grade, has_readme, has_license, has_tests,
		 has_ci, has_gitignore, criticals, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rs.SnapshotID, rs.Repo, rs.Score, rs.Grade, rs.HasReadme, rs.HasLicense,
		rs.HasTests, rs.HasCI, rs.HasGitignore, rs.Criticals, rs.Warnings,
	)
	return err
}

// GetRepoScores returns all repository scores for a snapshot, by repo name.
func (db *DB) GetRepoScores(snapshotID int64) (map[string]RepoScore, error) {
	rows, err := db.conn.Query(
		`SELECT id, snapshot_id, repo, score, grade, has_readme, has_license,
		 has_tests, has_ci, has_gitignore, criticals, warnings
		 FROM repo_scores WHERE snapshot_id = ? ORDER BY repo`,
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[string]RepoScore)
	for rows.Next() {
		var rs RepoScore
		if err := rows.Scan(
			&rs.ID, &rs.SnapshotID, &rs.Repo, &rs.Score, &rs.Grade,
			&rs.HasReadme, &rs.HasLicense, &rs.HasTests, &rs.HasCI,
			&rs.HasGitignore, &rs.Criticals, &rs.Warnings,
		); err != nil {
			return nil, err
		}
		scores[rs.Repo] = rs
	}
	return scores, rows.Err()
}

// Diff compares the two most recent snapshots and returns per-repository
// score deltas. Repositories present in only one snapshot are skipped.
func (db *DB) Diff() (*SnapshotDiff, error) {
	current, err := db.GetLatestSnapshot()
	if err != nil || current == nil {
		return nil, err
	}
	previous, err := db.GetSnapshotN(2)
	if err != nil || previous == nil {
		return &SnapshotDiff{Current: current}, err
	}

	currScores, err := db.GetRepoScores(current.ID)
	if err != nil {
		return nil, err
	}
	prevScores, err := db.GetRepoScores(previous.ID)
	if err != nil {
		return nil, err
	}

	diff := &SnapshotDiff{Previous: previous, Current: current}
	for repo, curr := range currScores {
		prev, ok := prevScores[repo]
		if !ok {
			continue
		}
		delta := ScoreDelta{
			Repo:     repo,
			Previous: prev.Score,
			Current:  curr.Score,
			Delta:    curr.Score - prev.Score,
		}
		switch {
		case delta.Delta > 0:
			delta.Direction = "improved"
		case delta.Delta < 0:
			delta.Direction = "regressed"
		default:
			delta.Direction = "unchanged"
		}
		diff.Deltas = append(diff.Deltas, delta)
	}
	sort.Slice(diff.Deltas, func(i, j int) bool {
		return diff.Deltas[i].Repo < diff.Deltas[j].Repo
	})
	return diff, nil
}
