package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry[V any] struct {
	expiresAt time.Time // zero: never expires
	value     V
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is a size-bounded in-memory LRU cache with per-entry expiration.
// It is safe for concurrent use.
type Memory[V any] struct {
	items *lru.Cache[string, entry[V]]
	// mu orders writes against removal of expired entries.
	mu      sync.Mutex
	opts    *memoryOptions
	onEvict atomic.Pointer[func(key string, value V)]
	done    chan struct{}
	once    sync.Once
	closed  atomic.Bool
}

// NewMemory creates an in-memory cache.
//
//	patterns := cache.NewMemory[intl.Normalized](
//		cache.WithMaxEntries(4096),
//		cache.WithDefaultTTL(-1),
//	)
//	defer patterns.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		opts: o,
		done: make(chan struct{}),
	}

	// lru.NewWithEvict only fails for a non-positive size, which the options
	// never produce.
	m.items, _ = lru.NewWithEvict(o.maxEntries, m.evicted)

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// SetEvictCallback registers fn to be called whenever an entry leaves the
// cache: LRU eviction, expiration, Delete and Clear. fn runs synchronously
// and must not write to the cache.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	if fn == nil {
		m.onEvict.Store(nil)
		return
	}
	m.onEvict.Store(&fn)
}

func (m *Memory[V]) evicted(key string, e entry[V]) {
	if fn := m.onEvict.Load(); fn != nil {
		(*fn)(key, e.value)
	}
}

// Get returns the value for key and marks it as recently used.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	e, ok := m.items.Get(key)
	if !ok {
		return zero, ErrNotFound
	}
	if e.expired(time.Now()) {
		m.removeExpired(key)
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Set stores value under key.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if m.closed.Load() {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.items.Add(key, e)
	m.mu.Unlock()
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.mu.Lock()
	m.items.Remove(key)
	m.mu.Unlock()
	return nil
}

// Has reports whether key is present and not expired. It does not affect
// recency.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	e, ok := m.items.Peek(key)
	if !ok {
		return false, nil
	}
	if e.expired(time.Now()) {
		m.removeExpired(key)
		return false, nil
	}
	return true, nil
}

// Len returns the number of entries, including expired ones not yet purged.
func (m *Memory[V]) Len() int {
	return m.items.Len()
}

// Clear removes all entries.
func (m *Memory[V]) Clear(_ context.Context) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.items.Purge()
	return nil
}

// Close stops the janitor. Reads keep working; writes return ErrClosed.
// Close is idempotent.
func (m *Memory[V]) Close() error {
	m.once.Do(func() {
		m.closed.Store(true)
		close(m.done)
	})
	return nil
}

func (m *Memory[V]) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

// deleteExpired walks keys from least to most recently used.
func (m *Memory[V]) deleteExpired() {
	for _, key := range m.items.Keys() {
		m.removeExpired(key)
	}
}

// removeExpired removes key only if the stored entry is still expired, so a
// value written after the caller's read survives.
func (m *Memory[V]) removeExpired(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.items.Peek(key); ok && e.expired(time.Now()) {
		m.items.Remove(key)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
