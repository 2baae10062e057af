package reccache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stylematch/internal/db"
	"github.com/kailas-cloud/stylematch/internal/domain/search/result"
)

const keyPrefix = "stylematch:rec:"

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache keeps ranked recommendation results in a key-value store.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a result cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly; may be nil.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

func storeKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return keyPrefix + hex.EncodeToString(h[:])
}

// Get returns cached results for a logical key. Store and decode failures are reported as misses.
func (c *Cache) Get(ctx context.Context, key string) ([]result.Result, bool) {
	key = storeKey(key)
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached results", zap.String("key", key), zap.Error(err))
		}
		c.inc("miss")
		return nil, false
	}

	var payload []resultDTO
	if err := json.Unmarshal(data, &payload); err != nil {
		c.logger.Warn("Failed to decode cached results", zap.String("key", key), zap.Error(err))
		c.inc("miss")
		return nil, false
	}

	c.inc("hit")
	out := make([]result.Result, len(payload))
	for i := range payload {
		out[i] = payload[i].toDomain()
	}
	return out, true
}

// Put stores results. Failures are logged and otherwise ignored.
func (c *Cache) Put(ctx context.Context, key string, results []result.Result) {
	key = storeKey(key)
	payload := make([]resultDTO, len(results))
	for i := range results {
		payload[i] = fromDomain(&results[i])
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("Failed to encode results", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache results", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) inc(res string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(res).Inc()
	}
}
