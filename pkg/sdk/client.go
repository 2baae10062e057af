package stylematch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylematch/internal/db"
	dbRedis "github.com/kailas-cloud/stylematch/internal/db/redis"
	"github.com/kailas-cloud/stylematch/internal/domain/search/request"
	"github.com/kailas-cloud/stylematch/internal/domain/search/result"
	catalogrepo "github.com/kailas-cloud/stylematch/internal/repository/catalog"
	"github.com/kailas-cloud/stylematch/internal/repository/reccache"
	recommenduc "github.com/kailas-cloud/stylematch/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = time.Hour
)

// recommendUseCase is the internal seam used by the Client; swapped in tests.
type recommendUseCase interface {
	Load(ctx context.Context) (recommenduc.Stats, error)
	Recommend(ctx context.Context, req *request.Request) ([]result.Result, error)
	Stats() (recommenduc.Stats, error)
}

// Client is the stylematch SDK entry point.
type Client struct {
	store db.Store
	svc   recommendUseCase
	obs   *observer
}

// New creates a Client and builds the first model.
// The provided context bounds the cache readiness check and the initial build.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{idColumn: catalogrepo.DefaultIDColumn}
	for _, o := range opts {
		o.apply(cfg)
	}

	source, err := createSource(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("stylematch: cache not ready: %w", err)
		}
	}

	c := wireClient(source, store, cfg, obs)
	if _, err := c.Reload(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func createSource(cfg *clientConfig) (recommenduc.RecordSource, error) {
	if cfg.records != nil {
		return &catalogrepo.SliceSource{Records: toInternalRecords(cfg.records)}, nil
	}
	if cfg.path == "" {
		return nil, errors.New("stylematch: catalog required (use WithCSVFile, WithParquetFile or WithRecords)")
	}
	src, err := catalogrepo.Open(cfg.path, cfg.format, cfg.idColumn)
	if err != nil {
		return nil, fmt.Errorf("stylematch: %w", err)
	}
	return src, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("stylematch: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("stylematch: unknown driver %q", cfg.driver)
	}
}

func wireClient(source recommenduc.RecordSource, store db.Store, cfg *clientConfig, obs *observer) *Client {
	// The SDK reports through slog; the engine's own zap logs are discarded.
	logger := zap.NewNop()

	var cache recommenduc.ResultCache
	if store != nil {
		ttl := cfg.cacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		cache = reccache.New(store, ttl, nil, logger)
	}

	svc := recommenduc.New(source, recommenduc.BuildOptions{
		MaxFeatures: cfg.maxFeatures,
		Workers:     cfg.workers,
	}, cache, logger)

	return &Client{store: store, svc: svc, obs: obs}
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Recommend returns up to topK catalog items most similar to query,
// best first. topK <= 0 selects the default of 5.
func (c *Client) Recommend(ctx context.Context, query string, topK int) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err, "results", len(recs)) }()

	req, err := request.New(query, topK)
	if err != nil {
		return nil, err
	}
	results, err := c.svc.Recommend(ctx, &req)
	if err != nil {
		return nil, err
	}
	return fromResults(results), nil
}

// Reload rebuilds the model from the catalog source. On failure the
// previous model keeps serving queries.
func (c *Client) Reload(ctx context.Context) (stats Stats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err, "items", stats.Items) }()

	s, err := c.svc.Load(ctx)
	if err != nil {
		return Stats{}, err
	}
	return fromStats(s), nil
}

// Stats describes the active model.
func (c *Client) Stats() (Stats, error) {
	s, err := c.svc.Stats()
	if err != nil {
		return Stats{}, err
	}
	return fromStats(s), nil
}
