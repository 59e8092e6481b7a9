// Package cache provides generic key-value caches used to keep pattern
// normalization results between Format calls.
//
// Two implementations share the [Cache] interface:
//
//   - [Memory] is a size-bounded LRU (github.com/hashicorp/golang-lru/v2)
//     with per-entry expiration and an optional background janitor.
//   - [Redis] stores values in Redis so several processes share one cache.
//
// TTL passed to Set follows one rule for both: positive expires after the
// duration, zero uses the configured default, negative never expires.
//
// # Memory
//
//	c := cache.NewMemory[intl.Normalized](
//		cache.WithMaxEntries(4096),
//		cache.WithCleanupInterval(time.Minute),
//	)
//	defer c.Close()
//
// [Memory.SetEvictCallback] observes entries leaving the cache for any reason.
//
// # Redis
//
// Values are encoded with a [Marshaler]; pass nil to [NewRedis] for JSON.
// Types with unexported fields, such as intl.Normalized, implement
// json.Marshaler themselves.
//
//	c := cache.NewRedis[intl.Normalized](client, nil, cache.WithPrefix("intl:patterns"))
//
// # Stampede Protection
//
// [GetOrSet] computes a missing value once even when many goroutines miss
// the same key at the same time:
//
//	n, err := cache.GetOrSet(ctx, c, pattern, func(context.Context) (intl.Normalized, time.Duration, error) {
//		return intl.Normalize(pattern), 0, nil
//	})
//
// Misses are reported as [ErrNotFound]; writes to a closed [Memory] return
// [ErrClosed]. Encoding failures wrap [ErrMarshal] or [ErrUnmarshal].
package cache
