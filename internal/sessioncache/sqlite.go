package sessioncache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/monitoring"
	"github.com/pitwall-data/pitwall.report/internal/timeutil"
)

// SQLite is a disk-backed session cache. It stores the raw session JSON so
// fetched data survives restarts, the same role the upstream library's
// on-disk cache directory plays. Lookup and store errors degrade to cache
// misses; the cache must never fail a request the upstream could serve.
type SQLite struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewSQLite opens (creating if needed) a session cache at path.
func NewSQLite(path string, clock timeutil.Clock) (*SQLite, error) {
	if clock == nil {
		clock = timeutil.RealClock{}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sessioncache: open %s: %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			year        INTEGER NOT NULL,
			round       INTEGER NOT NULL,
			session     TEXT NOT NULL,
			payload     TEXT NOT NULL,
			fetched_at  TIMESTAMP NOT NULL,
			PRIMARY KEY (year, round, session)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sessioncache: create schema: %w", err)
	}

	return &SQLite{db: db, clock: clock}, nil
}

// Get returns the cached session for key, if present and decodable.
func (s *SQLite) Get(key Key) (*f1.Session, bool) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM sessions WHERE year = ? AND round = ? AND session = ?`,
		key.Year, key.Round, key.Session,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		monitoring.Logf("sessioncache: sqlite get %s: %v", key, err)
		return nil, false
	}

	var doc f1.Session
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		monitoring.Logf("sessioncache: sqlite decode %s: %v", key, err)
		return nil, false
	}
	return &doc, true
}

// Put stores the session under key, replacing any existing entry.
func (s *SQLite) Put(key Key, session *f1.Session) {
	payload, err := json.Marshal(session)
	if err != nil {
		monitoring.Logf("sessioncache: sqlite encode %s: %v", key, err)
		return
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO sessions (year, round, session, payload, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		key.Year, key.Round, key.Session, string(payload), s.clock.Now().UTC(),
	)
	if err != nil {
		monitoring.Logf("sessioncache: sqlite put %s: %v", key, err)
	}
}

// FetchedAt returns when the entry for key was stored.
func (s *SQLite) FetchedAt(key Key) (string, bool) {
	var fetchedAt string
	err := s.db.QueryRow(
		`SELECT fetched_at FROM sessions WHERE year = ? AND round = ? AND session = ?`,
		key.Year, key.Round, key.Session,
	).Scan(&fetchedAt)
	if err != nil {
		return "", false
	}
	return fetchedAt, true
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
