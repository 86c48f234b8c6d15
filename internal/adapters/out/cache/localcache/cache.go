// Package localcache implements ports.Cache in process memory with bigcache.
// It serves single-instance deployments and tests that run without Redis.
package localcache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
)

// headerSize is the length of the expiry stamp stored in front of each value.
const headerSize = 8

// Cache stores each value behind an 8 byte big-endian expiry in unix
// nanoseconds, zero meaning no expiry of its own. bigcache still evicts
// anything older than the life window.
type Cache struct {
	cache      *bigcache.BigCache
	lifeWindow time.Duration
	now        func() time.Time
}

// New creates a cache whose entries live at most lifeWindow.
func New(ctx context.Context, lifeWindow time.Duration) (*Cache, error) {
	if lifeWindow <= 0 {
		return nil, errors.New("life window must be positive")
	}

	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.CleanWindow = lifeWindow / 2
	cfg.Verbose = false

	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create bigcache: %w", err)
	}
	return &Cache{cache: cache, lifeWindow: lifeWindow, now: time.Now}, nil
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, err := c.cache.Get(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < headerSize {
		_ = c.cache.Delete(key)
		return nil, false, nil
	}

	expiry := int64(binary.BigEndian.Uint64(raw[:headerSize])) //nolint:gosec // written by Set from an int64
	if expiry != 0 && c.now().UnixNano() >= expiry {
		_ = c.cache.Delete(key)
		return nil, false, nil
	}

	value := make([]byte, len(raw)-headerSize)
	copy(value, raw[headerSize:])
	return value, true, nil
}

// Set stores value for ttl, capped at the life window. A non-positive ttl
// leaves only the life window in effect.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expiry int64
	if ttl > 0 {
		expiry = c.now().Add(min(ttl, c.lifeWindow)).UnixNano()
	}

	raw := make([]byte, headerSize+len(value))
	binary.BigEndian.PutUint64(raw[:headerSize], uint64(expiry)) //nolint:gosec // non-negative
	copy(raw[headerSize:], value)
	return c.cache.Set(key, raw)
}

func (c *Cache) Delete(_ context.Context, key string) error {
	err := c.cache.Delete(key)
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return err
	}
	return nil
}

// DeleteByPrefix iterates the whole cache. Entries added during the
// iteration may survive it.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	var matched []string
	it := c.cache.Iterator()
	for it.SetNext() {
		entry, err := it.Value()
		if err != nil {
			continue
		}
		if strings.HasPrefix(entry.Key(), prefix) {
			matched = append(matched, entry.Key())
		}
	}

	for _, key := range matched {
		if err := c.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) Close() error {
	return c.cache.Close()
}
