package sessioncache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/timeutil"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	clock := timeutil.NewMockClock(time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC))
	cache, err := NewSQLite(filepath.Join(t.TempDir(), "sessions.db"), clock)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSQLite_GetMissOnEmpty(t *testing.T) {
	cache := newTestSQLite(t)
	_, ok := cache.Get(Key{Year: 2024, Round: 1, Session: "R"})
	assert.False(t, ok)
}

func TestSQLite_RoundTrip(t *testing.T) {
	cache := newTestSQLite(t)
	key := Key{Year: 2024, Round: 1, Session: "R"}

	sess := &f1.Session{
		Year:        2024,
		Round:       1,
		SessionType: "R",
		Laps: map[string][]f1.Lap{
			"VER": {{LapNumber: 1, Time: f1.Float64(95.5)}},
		},
	}
	cache.Put(key, sess)

	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, 2024, got.Year)
	require.Len(t, got.Laps["VER"], 1)
	assert.Equal(t, 95.5, *got.Laps["VER"][0].Time)
}

func TestSQLite_PutReplaces(t *testing.T) {
	cache := newTestSQLite(t)
	key := Key{Year: 2024, Round: 1, Session: "R"}

	cache.Put(key, &f1.Session{Year: 2024, Round: 1})
	cache.Put(key, &f1.Session{Year: 2024, Round: 42})

	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, 42, got.Round)
}

func TestSQLite_FetchedAt(t *testing.T) {
	cache := newTestSQLite(t)
	key := Key{Year: 2024, Round: 1, Session: "R"}

	_, ok := cache.FetchedAt(key)
	assert.False(t, ok)

	cache.Put(key, &f1.Session{Year: 2024})
	fetchedAt, ok := cache.FetchedAt(key)
	require.True(t, ok)
	assert.Contains(t, fetchedAt, "2024-03-02")
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.db")
	key := Key{Year: 2024, Round: 1, Session: "R"}

	first, err := NewSQLite(path, timeutil.RealClock{})
	require.NoError(t, err)
	first.Put(key, &f1.Session{Year: 2024, Round: 1})
	require.NoError(t, first.Close())

	second, err := NewSQLite(path, timeutil.RealClock{})
	require.NoError(t, err)
	defer second.Close()

	got, ok := second.Get(key)
	require.True(t, ok)
	assert.Equal(t, 2024, got.Year)
}

func TestSQLite_ImplementsCache(t *testing.T) {
	var _ Cache = (*SQLite)(nil)
}
