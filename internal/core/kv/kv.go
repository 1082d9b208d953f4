// Package kv defines the small persistent key-value sidecar used for user
// preferences such as the theme.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key does not exist.
var ErrNotFound = errors.New("kv key not found")

// Entry is a raw stored value with its timestamps.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// KV is a persistent store of JSON-serializable values keyed by string.
// Get on a missing key returns an error wrapping ErrNotFound.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}
