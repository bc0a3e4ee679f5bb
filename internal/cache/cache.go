// Package cache provides verdict caching so repeated analyses of the same
// document skip the model round-trip for conclusive results.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// Client defines the cache interface.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// VerdictKey builds the cache key for one (document, page, standard, model)
// evaluation. The document is identified by content hash so renamed uploads
// still hit.
func VerdictKey(docSHA256 string, page int, standardID, model string) string {
	return fmt.Sprintf("verdict:%s:%d:%s:%s", docSHA256, page, standardID, model)
}
