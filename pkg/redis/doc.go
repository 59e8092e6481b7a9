// Package redis opens go-redis clients for the shared pattern cache.
//
// [Open] parses a redis:// or rediss:// URL, applies pool and timeout
// options and retries the initial PING before giving up:
//
//	client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
// [Healthcheck] adapts the client to a readiness check and [Shutdown] closes
// it when the server stops.
package redis
