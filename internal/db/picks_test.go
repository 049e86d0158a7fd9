package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesDirectoryAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	sqlDB, err := Open(path)
	require.NoError(t, err)
	defer sqlDB.Close()

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM picks`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestRecentPicks_NewestFirst(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, RecordPick(sqlDB, "a.test.js", "A/one", base))
	require.NoError(t, RecordPick(sqlDB, "b.test.js", "B/two", base.Add(time.Minute)))
	require.NoError(t, RecordPick(sqlDB, "a.test.js", "A/three", base.Add(500*time.Millisecond)))

	picks, err := RecentPicks(sqlDB, 10)
	require.NoError(t, err)
	require.Len(t, picks, 3)
	assert.Equal(t, "B/two", picks[0].Name)
	assert.Equal(t, "A/three", picks[1].Name)
	assert.Equal(t, "A/one", picks[2].Name)
	assert.True(t, picks[0].PickedAt.Equal(base.Add(time.Minute)))

	picks, err = RecentPicks(sqlDB, 1)
	require.NoError(t, err)
	require.Len(t, picks, 1)
}

func TestLastPick(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = LastPick(sqlDB)
	assert.ErrorIs(t, err, ErrNoPicks)

	require.NoError(t, RecordPick(sqlDB, "a.test.js", "A/one", time.Now()))
	p, err := LastPick(sqlDB)
	require.NoError(t, err)
	assert.Equal(t, "A/one", p.Name)
	assert.Equal(t, "a.test.js", p.FilePath)
}

func TestPickCounts(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	now := time.Now()
	require.NoError(t, RecordPick(sqlDB, "b.test.js", "x", now))
	require.NoError(t, RecordPick(sqlDB, "a.test.js", "y", now))
	require.NoError(t, RecordPick(sqlDB, "b.test.js", "z", now))

	counts, err := PickCounts(sqlDB)
	require.NoError(t, err)
	assert.Equal(t, []PickCount{{"b.test.js", 2}, {"a.test.js", 1}}, counts)
}
