package cache

import "time"

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

const defaultMaxEntries = 1024

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
		maxEntries:      defaultMaxEntries,
	}
}

// WithDefaultTTL sets the TTL used when Set is called with zero.
// A negative value makes such entries permanent.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often expired entries are purged in the
// background. Zero disables the janitor; expired entries are then dropped
// lazily on access.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries bounds the cache size. The least recently used entry is
// evicted when the bound is reached. Non-positive values keep the default.
// Default: 1024.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		if n > 0 {
			o.maxEntries = n
		}
	}
}
