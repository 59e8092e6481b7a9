package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/cache"
)

type compiled struct {
	Pattern string   `json:"pattern"`
	Names   []string `json:"names"`
}

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[compiled]()
		defer c.Close()

		_, err := c.Get(context.Background(), "{name}")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("stores struct values", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[compiled]()
		defer c.Close()

		ctx := context.Background()
		want := compiled{Pattern: "Hi {0}", Names: []string{"name"}}
		require.NoError(t, c.Set(ctx, "Hi {name}", want, time.Minute))

		got, err := c.Get(ctx, "Hi {name}")
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("overwrite replaces value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "k", 2, time.Minute))

		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, 2, got)
		require.Equal(t, 1, c.Len())
	})

	t.Run("entry expires lazily", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
		require.Equal(t, 0, c.Len())
	})

	t.Run("zero TTL uses default", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](
			cache.WithDefaultTTL(20*time.Millisecond),
			cache.WithCleanupInterval(0),
		)
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", 0))

		_, err := c.Get(ctx, "k")
		require.NoError(t, err)

		time.Sleep(40 * time.Millisecond)
		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative TTL never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](
			cache.WithDefaultTTL(5*time.Millisecond),
			cache.WithCleanupInterval(0),
		)
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "forever", -1))
		time.Sleep(15 * time.Millisecond)

		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "forever", got)
	})
}

func TestMemory_Eviction(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithMaxEntries(2))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
		require.NoError(t, c.Set(ctx, "b", "2", time.Minute))

		_, err := c.Get(ctx, "a")
		require.NoError(t, err)

		require.NoError(t, c.Set(ctx, "c", "3", time.Minute))

		has, err := c.Has(ctx, "a")
		require.NoError(t, err)
		require.True(t, has)

		has, err = c.Has(ctx, "b")
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("non-positive max entries keeps default", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(0))
		defer c.Close()

		ctx := context.Background()
		for i := range 10 {
			require.NoError(t, c.Set(ctx, string(rune('a'+i)), i, time.Minute))
		}
		require.Equal(t, 10, c.Len())
	})

	t.Run("callback sees every removal", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		defer c.Close()

		var (
			mu      sync.Mutex
			evicted []string
		)
		c.SetEvictCallback(func(key string, _ int) {
			mu.Lock()
			evicted = append(evicted, key)
			mu.Unlock()
		})

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
		require.NoError(t, c.Set(ctx, "c", 3, time.Minute)) // evicts a
		require.NoError(t, c.Delete(ctx, "b"))
		require.NoError(t, c.Clear(ctx)) // removes c

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []string{"a", "b", "c"}, evicted)
	})
}

func TestMemory_Janitor(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithCleanupInterval(5 * time.Millisecond))
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", "v", 10*time.Millisecond))
	require.NoError(t, c.Set(ctx, "long", "v", time.Minute))

	require.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 5*time.Millisecond)

	has, err := c.Has(ctx, "long")
	require.NoError(t, err)
	require.True(t, has)
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	require.ErrorIs(t, c.Set(ctx, "k2", "v", time.Minute), cache.ErrClosed)
	require.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrClosed)
	require.ErrorIs(t, c.Clear(ctx), cache.ErrClosed)

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", got)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int](cache.WithMaxEntries(16))
	defer c.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			_ = c.Set(ctx, "k", i, time.Minute)
		})
		wg.Go(func() {
			_, _ = c.Get(ctx, "k")
		})
	}
	for range 10 {
		wg.Go(func() {
			_ = c.Delete(ctx, "k")
		})
	}
	wg.Wait()
}

func TestMemory_ExpiredReadKeepsFreshWrite(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithCleanupInterval(0))
	defer c.Close()

	ctx := context.Background()
	for i := range 200 {
		require.NoError(t, c.Set(ctx, "k", "stale", time.Nanosecond))
		time.Sleep(time.Microsecond)

		var wg sync.WaitGroup
		for range 4 {
			wg.Go(func() {
				_, _ = c.Get(ctx, "k")
			})
			wg.Go(func() {
				_, _ = c.Has(ctx, "k")
			})
		}
		require.NoError(t, c.Set(ctx, "k", "fresh", time.Minute))
		wg.Wait()

		got, err := c.Get(ctx, "k")
		require.NoError(t, err, "iteration %d", i)
		require.Equal(t, "fresh", got)
	}
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("hit skips fn", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "cached", time.Minute))

		got, err := cache.GetOrSet(ctx, c, "k", func(context.Context) (string, time.Duration, error) {
			t.Fatal("fn called on hit")
			return "", 0, nil
		})
		require.NoError(t, err)
		require.Equal(t, "cached", got)
	})

	t.Run("miss stores result", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		got, err := cache.GetOrSet(ctx, c, "miss-stores", func(context.Context) (string, time.Duration, error) {
			return "computed", time.Minute, nil
		})
		require.NoError(t, err)
		require.Equal(t, "computed", got)

		cached, err := c.Get(ctx, "miss-stores")
		require.NoError(t, err)
		require.Equal(t, "computed", cached)
	})

	t.Run("error is not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		boom := errors.New("boom")
		_, err := cache.GetOrSet(ctx, c, "fails", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		_, err = c.Get(ctx, "fails")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("still returns value when cache is closed", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		require.NoError(t, c.Close())

		got, err := cache.GetOrSet(context.Background(), c, "closed", func(context.Context) (int, time.Duration, error) {
			return 7, 0, nil
		})
		require.NoError(t, err)
		require.Equal(t, 7, got)
	})

	t.Run("same key different types do not collide", func(t *testing.T) {
		t.Parallel()

		ints := cache.NewMemory[int]()
		defer ints.Close()
		strs := cache.NewMemory[string]()
		defer strs.Close()

		ctx := context.Background()
		n, err := cache.GetOrSet(ctx, ints, "shared", func(context.Context) (int, time.Duration, error) {
			return 1, 0, nil
		})
		require.NoError(t, err)
		require.Equal(t, 1, n)

		s, err := cache.GetOrSet(ctx, strs, "shared", func(context.Context) (string, time.Duration, error) {
			return "one", 0, nil
		})
		require.NoError(t, err)
		require.Equal(t, "one", s)
	})

	t.Run("deduplicates concurrent misses", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		var (
			calls atomic.Int64
			wg    sync.WaitGroup
		)
		for range 10 {
			wg.Go(func() {
				v, err := cache.GetOrSet(ctx, c, "dedup", func(context.Context) (int, time.Duration, error) {
					calls.Add(1)
					time.Sleep(10 * time.Millisecond)
					return 42, time.Minute, nil
				})
				if err == nil && v != 42 {
					t.Errorf("got %d, want 42", v)
				}
			})
		}
		wg.Wait()

		require.LessOrEqual(t, calls.Load(), int64(2))
	})
}

func TestJSONMarshaler(t *testing.T) {
	t.Parallel()

	m := cache.JSON[compiled]()
	in := compiled{Pattern: "{0} {1}", Names: []string{"a", "b"}}

	data, err := m.Marshal(in)
	require.NoError(t, err)

	out, err := m.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, in, out)

	_, err = m.Unmarshal([]byte("{"))
	require.ErrorIs(t, err, cache.ErrUnmarshal)

	_, err = cache.JSON[func()]().Marshal(func() {})
	require.ErrorIs(t, err, cache.ErrMarshal)
}
