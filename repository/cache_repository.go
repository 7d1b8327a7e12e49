package repository

import (
	"context"
	"time"
)

// CacheRepository stores string values for a limited time. A ttl of zero
// means the value does not expire.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
