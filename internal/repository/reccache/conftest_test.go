package reccache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylematch/internal/db"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	data  map[string][]byte
	ttls  map[string]time.Duration
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCache(t *testing.T) (*Cache, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
	return New(ms, 10*time.Minute, nil, zap.NewNop()), ms
}
