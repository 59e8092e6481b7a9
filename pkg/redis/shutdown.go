package redis

import (
	"context"
	"io"
)

// Shutdown returns a hook that closes the client, for use with
// server.Config.OnShutdown.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
