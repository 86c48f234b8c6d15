package coherency

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"go.uber.org/zap"
)

// DefaultTTL is used when the layer is created with a non-positive TTL.
const DefaultTTL = 5 * time.Minute

// Layer keeps cached listings and histories coherent with the store.
//
// Reads go through the cache and fall back to the loader on a miss, a corrupt
// payload or a cache failure. Writes to the cache never fail the caller:
// errors are logged and counted. Callers invalidate only after their
// transaction has committed.
//
// Every invalidation advances the layer's epoch. A value loaded under an
// older epoch is never left in the cache, so a slow load cannot re-cache data
// that a concurrent commit already invalidated.
type Layer struct {
	cache  ports.Cache
	ttl    time.Duration
	logger *zap.Logger
	epoch  atomic.Uint64
}

func NewLayer(cache ports.Cache, ttl time.Duration, logger *zap.Logger) *Layer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Layer{cache: cache, ttl: ttl, logger: logger}
}

// Invalidate drops every cached listing of the given entity types.
func (l *Layer) Invalidate(ctx context.Context, prefixes ...Prefix) {
	l.epoch.Add(1)
	for _, p := range prefixes {
		if err := l.cache.DeleteByPrefix(ctx, p.Key()); err != nil {
			cacheInvalidations.WithLabelValues(string(p), resultError).Inc()
			l.logger.Warn("cache prefix invalidation failed",
				zap.String("prefix", string(p)), zap.Error(err))
			continue
		}
		cacheInvalidations.WithLabelValues(string(p), resultOK).Inc()
	}
}

// InvalidateHistory drops the cached history of each tracking code.
func (l *Layer) InvalidateHistory(ctx context.Context, codes ...kernel.TrackingCode) {
	l.epoch.Add(1)
	for _, code := range codes {
		if err := l.cache.Delete(ctx, HistoryKey(code)); err != nil {
			cacheInvalidations.WithLabelValues("history", resultError).Inc()
			l.logger.Warn("cache history invalidation failed",
				zap.String("trackingCode", code.String()), zap.Error(err))
			continue
		}
		cacheInvalidations.WithLabelValues("history", resultOK).Inc()
	}
}

// Load decodes the value cached at key into dst and reports whether it did.
func (l *Layer) Load(ctx context.Context, key string, dst any) bool {
	raw, ok, err := l.cache.Get(ctx, key)
	if err != nil {
		cacheRequests.WithLabelValues(resultError).Inc()
		l.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		cacheRequests.WithLabelValues(resultMiss).Inc()
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		cacheRequests.WithLabelValues(resultError).Inc()
		l.logger.Warn("cached payload is corrupt, treating as miss", zap.String("key", key), zap.Error(err))
		_ = l.cache.Delete(ctx, key)
		return false
	}
	cacheRequests.WithLabelValues(resultHit).Inc()
	return true
}

// Store caches value at key for the layer's TTL.
func (l *Layer) Store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		l.logger.Warn("cache value is not encodable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := l.cache.Set(ctx, key, raw, l.ttl); err != nil {
		l.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Epoch returns the current invalidation epoch. Take it before loading a
// value that will be passed to StoreIfCurrent.
func (l *Layer) Epoch() uint64 {
	return l.epoch.Load()
}

// StoreIfCurrent caches value at key unless an invalidation happened after
// epoch was taken, and reports whether the value stayed cached. An
// invalidation that races the write is detected afterwards and the key is
// dropped again.
func (l *Layer) StoreIfCurrent(ctx context.Context, key string, value any, epoch uint64) bool {
	if l.epoch.Load() != epoch {
		cacheStaleWrites.Inc()
		return false
	}
	l.Store(ctx, key, value)
	if l.epoch.Load() != epoch {
		cacheStaleWrites.Inc()
		if err := l.cache.Delete(ctx, key); err != nil {
			l.logger.Warn("stale cache entry could not be dropped", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

// ReadThrough returns the value cached at key or, failing that, the result of
// load, which is then cached unless the key was invalidated while loading.
// Errors from load are returned uncached.
func ReadThrough[T any](ctx context.Context, l *Layer, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if l.Load(ctx, key, &cached) {
		return cached, nil
	}

	epoch := l.Epoch()
	fresh, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	l.StoreIfCurrent(ctx, key, fresh, epoch)
	return fresh, nil
}
