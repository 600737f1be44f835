// Package cache stores completed audit reports keyed by URL and crawl
// identity. The Store interface lets deployments swap the in-memory map for
// an external store without touching the handlers.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/ssaharsh1/quoted-llmo/models"
)

// Store is the cache contract the API layer depends on.
type Store interface {
	// Get returns the cached report for key, or false on a miss.
	Get(key string) (*models.AuditReport, bool)

	// Put stores a report under key for ttl. A ttl of zero or less uses
	// the store's default.
	Put(key string, report *models.AuditReport, ttl time.Duration)

	// EvictOldest removes the n oldest entries.
	EvictOldest(n int)
}

// Key derives a cache key from the audited URL and crawl identity. The same
// page crawled as different identities yields different reports, so the
// identity is part of the key.
func Key(url, profile string) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write([]byte("|"))
	h.Write([]byte(profile))
	return hex.EncodeToString(h.Sum(nil))
}

// entry holds a cached report with its lifetime bounds.
type entry struct {
	report    *models.AuditReport
	createdAt time.Time
	expiresAt time.Time
}

// Memory is the default in-memory Store. It is safe for concurrent use.
type Memory struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	defaultTTL time.Duration
}

// NewMemory creates an in-memory store holding at most maxEntries reports,
// each valid for defaultTTL unless Put overrides it. A background goroutine
// evicts expired entries every minute.
func NewMemory(maxEntries int, defaultTTL time.Duration) *Memory {
	m := &Memory{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
	}
	go m.cleanupLoop()
	return m
}

func (m *Memory) Get(key string) (*models.AuditReport, bool) {
	m.mu.RLock()
	e, ok := m.store[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.report, true
}

func (m *Memory) Put(key string, report *models.AuditReport, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.store) >= m.maxEntries {
		m.evictOldestLocked(1)
	}
	m.store[key] = &entry{
		report:    report,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
}

func (m *Memory) EvictOldest(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictOldestLocked(n)
}

// evictOldestLocked removes the n entries with the earliest creation time.
// Caller holds m.mu.
func (m *Memory) evictOldestLocked(n int) {
	if n <= 0 {
		return
	}
	type aged struct {
		key       string
		createdAt time.Time
	}
	all := make([]aged, 0, len(m.store))
	for k, e := range m.store {
		all = append(all, aged{k, e.createdAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].createdAt.Before(all[j].createdAt) })
	if n > len(all) {
		n = len(all)
	}
	for _, a := range all[:n] {
		delete(m.store, a.key)
	}
}

func (m *Memory) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		m.mu.Lock()
		for k, e := range m.store {
			if now.After(e.expiresAt) {
				delete(m.store, k)
			}
		}
		m.mu.Unlock()
	}
}
