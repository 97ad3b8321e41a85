package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	entry   Entry
	expires time.Time // zero means no expiry
	seq     uint64    // insertion order, for eviction
}

// MemoryStore is a process-local Store. It is safe for concurrent use.
//
// Expired entries are dropped when read and swept on Put. When maxEntries is
// positive and the store is full, Put evicts the oldest entry.
type MemoryStore struct {
	mu         sync.RWMutex
	items      map[string]memoryItem
	ttl        time.Duration
	maxEntries int
	seq        uint64
	now        func() time.Time
}

// NewMemoryStore returns an empty MemoryStore. Entries expire ttl after Put;
// a zero ttl keeps them until evicted. A non-positive maxEntries leaves the
// store unbounded.
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	return &MemoryStore{
		items:      make(map[string]memoryItem),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns a live entry for key. Expired entries are dropped on read.
func (m *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return Entry{}, false, nil
	}
	if item.expired(m.now()) {
		m.mu.Lock()
		if cur, ok := m.items[key]; ok && cur.seq == item.seq {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return Entry{}, false, nil
	}

	return item.entry, true, nil
}

// Put stores e under key, sweeping expired entries and evicting the oldest
// one if the store is full.
func (m *MemoryStore) Put(_ context.Context, key string, e Entry) error {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	item := memoryItem{entry: e, seq: m.seq}
	if m.ttl > 0 {
		item.expires = now.Add(m.ttl)
	}

	if _, ok := m.items[key]; !ok {
		m.sweep(now)
		if m.maxEntries > 0 && len(m.items) >= m.maxEntries {
			m.evictOldest()
		}
	}
	m.items[key] = item

	return nil
}

// sweep drops expired entries. Callers hold mu.
func (m *MemoryStore) sweep(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for k, it := range m.items {
		if it.expired(now) {
			delete(m.items, k)
		}
	}
}

// evictOldest drops the entry with the lowest insertion sequence. Callers hold mu.
func (m *MemoryStore) evictOldest() {
	var (
		oldest string
		seq    uint64
		found  bool
	)
	for k, it := range m.items {
		if !found || it.seq < seq {
			oldest, seq, found = k, it.seq, true
		}
	}
	if found {
		delete(m.items, oldest)
	}
}

// Len returns the number of stored entries, expired ones not yet swept included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}

func (it memoryItem) expired(now time.Time) bool {
	return !it.expires.IsZero() && !now.Before(it.expires)
}
