package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigratesFreshDatabase(t *testing.T) {
	db := openTestDB(t)

	// A fresh database has no snapshots but a valid schema.
	latest, err := db.GetLatestSnapshot()
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestCreateSnapshotAndScores(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateSnapshot("health", "test")
	require.NoError(t, err)

	require.NoError(t, db.InsertRepoScore(&RepoScore{
		SnapshotID: id,
		Repo:       "webapp",
		Score:      80,
		Grade:      "B",
		HasReadme:  true,
		HasLicense: true,
		HasTests:   true,
		HasCI:      true,
		Criticals:  1,
	}))

	latest, err := db.GetLatestSnapshot()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, id, latest.ID)
	assert.Equal(t, "health", latest.Command)
	assert.False(t, latest.TakenAt.IsZero())

	scores, err := db.GetRepoScores(id)
	require.NoError(t, err)
	require.Contains(t, scores, "webapp")
	assert.Equal(t, 80, scores["webapp"].Score)
	assert.Equal(t, "B", scores["webapp"].Grade)
	assert.True(t, scores["webapp"].HasReadme)
	assert.False(t, scores["webapp"].HasGitignore)
	assert.Equal(t, 1, scores["webapp"].Criticals)
}

func TestGetSnapshotN(t *testing.T) {
	db := openTestDB(t)

	first, err := db.CreateSnapshot("health", "test")
	require.NoError(t, err)
	second, err := db.CreateSnapshot("health", "test")
	require.NoError(t, err)

	latest, err := db.GetSnapshotN(1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second, latest.ID)

	previous, err := db.GetSnapshotN(2)
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, first, previous.ID)

	missing, err := db.GetSnapshotN(3)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDiff_TracksDirections(t *testing.T) {
	db := openTestDB(t)

	prev, err := db.CreateSnapshot("health", "test")
	require.NoError(t, err)
	for repo, score := range map[string]int{"up": 40, "down": 80, "flat": 60, "gone": 20} {
		require.NoError(t, db.InsertRepoScore(&RepoScore{SnapshotID: prev, Repo: repo, Score: score, Grade: "C"}))
	}

	curr, err := db.CreateSnapshot("health", "test")
	require.NoError(t, err)
	for repo, score := range map[string]int{"up": 60, "down": 60, "flat": 60, "new": 100} {
		require.NoError(t, db.InsertRepoScore(&RepoScore{SnapshotID: curr, Repo: repo, Score: score, Grade: "C"}))
	}

	diff, err := db.Diff()
	require.NoError(t, err)
	require.NotNil(t, diff)
	require.NotNil(t, diff.Previous)

	// Repos in only one snapshot are skipped; deltas sort by name.
	require.Len(t, diff.Deltas, 3)
	assert.Equal(t, "down", diff.Deltas[0].Repo)
	assert.Equal(t, "regressed", diff.Deltas[0].Direction)
	assert.Equal(t, -20, diff.Deltas[0].Delta)
	assert.Equal(t, "flat", diff.Deltas[1].Repo)
	assert.Equal(t, "unchanged", diff.Deltas[1].Direction)
	assert.Equal(t, "up", diff.Deltas[2].Repo)
	assert.Equal(t, "improved", diff.Deltas[2].Direction)
	assert.Equal(t, 20, diff.Deltas[2].Delta)
}

func TestDiff_SingleSnapshotHasNoPrevious(t *testing.T) {
	db := openTestDB(t)

	_, err := db.CreateSnapshot("health", "test")
	require.NoError(t, err)

	diff, err := db.Diff()
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Nil(t, diff.Previous)
	assert.Empty(t, diff.Deltas)
}

func TestDiff_EmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	diff, err := db.Diff()
	require.NoError(t, err)
	assert.Nil(t, diff)
}
