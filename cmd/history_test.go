package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/testpick/internal/config"
	"github.com/chriserin/testpick/internal/db"
)

func seedPicks(t *testing.T, base time.Time) {
	t.Helper()
	sqlDB, err := db.Open(config.Default().History.File)
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, db.RecordPick(sqlDB, "a.test.js", "A/first", base.Add(-2*time.Hour)))
	require.NoError(t, db.RecordPick(sqlDB, "b.test.js", "B/second", base.Add(-5*time.Minute)))
	require.NoError(t, db.RecordPick(sqlDB, "a.test.js", "A/third", base.Add(-time.Minute)))
}

func TestHistory_RequiresInit(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	assert.EqualError(t, RunHistory(&buf, 0, time.Now()), "run `testpick init` first")
	assert.EqualError(t, RunHistoryLast(&buf), "run `testpick init` first")
}

func TestHistory_Empty(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	require.NoError(t, RunHistory(&buf, 0, time.Now()))
	assert.Equal(t, "no picks yet\n", buf.String())
}

func TestHistory_NewestFirstWithRelativeTime(t *testing.T) {
	inTempDir(t)
	runInit(t)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	seedPicks(t, now)

	var buf bytes.Buffer
	require.NoError(t, RunHistory(&buf, 2, now))
	out := buf.String()

	assert.Contains(t, out, "1 minute ago  A/third")
	assert.Contains(t, out, "5 minutes ago  B/second")
	assert.NotContains(t, out, "A/first")
}

func TestHistory_Last(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	assert.EqualError(t, RunHistoryLast(&buf), "nothing picked yet")

	seedPicks(t, time.Now())
	require.NoError(t, RunHistoryLast(&buf))
	assert.Equal(t, "A/third\n", buf.String())
}

func TestHistory_Counts(t *testing.T) {
	inTempDir(t)
	runInit(t)
	seedPicks(t, time.Now())

	var buf bytes.Buffer
	require.NoError(t, RunHistoryCounts(&buf))
	assert.Equal(t, "a.test.js  2\nb.test.js  1\n", buf.String())
}
