package repository

import (
	"context"
	"time"
)

// StateStore abstracts key-value state persistence.
// Implementations: Redis (production), BoltDB (local file), or
// in-memory (tests / local dev). A missing key reads back as nil with
// no error.
type StateStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
