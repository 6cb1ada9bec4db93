// Package storage provides the string key-value port the inventory
// tracker persists through. Two durable backends exist: redis for a
// shared deployment and sqlite for a single-device install. The backend
// is chosen once at construction time and never branched on per call.
package storage

import (
	"context"
)

type Store interface {
	// Get returns the value for key. The second return is false when the
	// key is absent; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Close() error
}
