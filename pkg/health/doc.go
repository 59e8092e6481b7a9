// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"formatter": canary,
//		"redis":     redis.Healthcheck(client),
//	}, health.WithTimeout(2*time.Second)))
//
// Checks run concurrently under one timeout. Responses are plain text
// ("OK" or "Service Unavailable") unless the client asks for JSON with
// ?format=json or Accept: application/json, in which case every check is
// reported with its status, error and duration.
package health
