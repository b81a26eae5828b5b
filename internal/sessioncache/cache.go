// Package sessioncache caches provider session documents keyed by
// (year, round, session). Entries have no TTL and are never evicted: a
// finished session's data does not change. The cache is read/fetch-if-
// absent only; derivation code never writes through it.
package sessioncache

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/monitoring"
)

// Key identifies one session document.
type Key struct {
	Year    int
	Round   int
	Session string
}

// String renders the key for log lines.
func (k Key) String() string {
	return fmt.Sprintf("%d/%d/%s", k.Year, k.Round, k.Session)
}

// Cache stores session documents. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the cached session for key, if present.
	Get(key Key) (*f1.Session, bool)
	// Put stores the session under key, replacing any existing entry.
	Put(key Key, session *f1.Session)
}

// Memory is a mutex-guarded in-memory cache.
type Memory struct {
	mu       sync.RWMutex
	sessions map[Key]*f1.Session
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[Key]*f1.Session)}
}

// Get returns the cached session for key.
func (m *Memory) Get(key Key) (*f1.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[key]
	return s, ok
}

// Put stores the session under key.
func (m *Memory) Put(key Key, session *f1.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key] = session
}

// Len returns the number of cached sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SessionSource loads session documents from the upstream provider.
type SessionSource interface {
	LoadSession(ctx context.Context, year, round int, session string) (*f1.Session, error)
}

// Loader combines a source with a cache: fetch-if-absent per key.
// Concurrent requests for the same cold key may both hit the upstream;
// the duplicate fetch is tolerated and the last write wins.
type Loader struct {
	source SessionSource
	cache  Cache
}

// NewLoader creates a loader over source and cache.
func NewLoader(source SessionSource, cache Cache) *Loader {
	return &Loader{source: source, cache: cache}
}

// Session returns the session for (year, round, session), fetching and
// caching it on a miss.
func (l *Loader) Session(ctx context.Context, year, round int, session string) (*f1.Session, error) {
	key := Key{Year: year, Round: round, Session: session}
	if s, ok := l.cache.Get(key); ok {
		monitoring.Logf("sessioncache: hit %s", key)
		return s, nil
	}

	monitoring.Logf("sessioncache: miss %s, fetching", key)
	s, err := l.source.LoadSession(ctx, year, round, session)
	if err != nil {
		return nil, err
	}
	l.cache.Put(key, s)
	return s, nil
}
