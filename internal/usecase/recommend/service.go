package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylematch/internal/domain"
	"github.com/kailas-cloud/stylematch/internal/domain/search/request"
	"github.com/kailas-cloud/stylematch/internal/domain/search/result"
	"github.com/kailas-cloud/stylematch/internal/metrics"
	"github.com/kailas-cloud/stylematch/internal/normalize"
)

// Service answers recommendation queries against the current model and
// rebuilds it on demand.
type Service struct {
	source RecordSource
	opts   BuildOptions
	cache  ResultCache
	logger *zap.Logger

	model  atomic.Pointer[Model]
	loadMu sync.Mutex
}

// New creates a recommendation service. cache can be nil.
func New(source RecordSource, opts BuildOptions, cache ResultCache, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		opts:   opts,
		cache:  cache,
		logger: logger,
	}
}

// Load reads the record source, builds a model and publishes it.
// On failure the previously published model stays active.
func (s *Service) Load(ctx context.Context) (Stats, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := time.Now()
	m, err := s.build(ctx)
	metrics.CorpusBuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		status := "error"
		if errors.Is(err, domain.ErrInvalidCorpus) {
			status = "invalid"
		}
		metrics.CorpusBuildsTotal.WithLabelValues(status).Inc()
		s.logger.Error("Corpus build failed", zap.String("status", status), zap.Error(err))
		return Stats{}, err
	}

	s.model.Store(m)

	stats := m.Stats()
	metrics.CorpusBuildsTotal.WithLabelValues("ok").Inc()
	metrics.CorpusItems.Set(float64(stats.Items))
	metrics.VocabularySize.Set(float64(stats.VocabularySize))
	for field, n := range stats.MalformedFields {
		metrics.MalformedFieldsTotal.WithLabelValues(field).Add(float64(n))
	}
	for _, mf := range m.Malformed() {
		s.logger.Debug("Recovered malformed field",
			zap.String("item_id", mf.ItemID),
			zap.String("field", mf.Field),
		)
	}

	s.logger.Info("Corpus model published",
		zap.Int("items", stats.Items),
		zap.Int("vocabulary_size", stats.VocabularySize),
		zap.String("fingerprint", stats.Fingerprint),
		zap.Duration("build_duration", stats.BuildDuration),
	)
	return stats, nil
}

func (s *Service) build(ctx context.Context) (*Model, error) {
	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	m, err := Build(ctx, records, s.opts)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}
	return m, nil
}

// Recommend returns the items most similar to the request query.
// A query with no terms yields an empty, non-nil slice.
func (s *Service) Recommend(ctx context.Context, req *request.Request) ([]result.Result, error) {
	start := time.Now()
	defer func() { metrics.RecommendDuration.Observe(time.Since(start).Seconds()) }()

	m := s.model.Load()
	if m == nil {
		metrics.RecommendRequestsTotal.WithLabelValues("not_ready").Inc()
		return nil, domain.ErrModelNotReady
	}

	normalized := strings.Join(normalize.Text(req.Query()), " ")
	if normalized == "" {
		metrics.RecommendRequestsTotal.WithLabelValues("empty").Inc()
		return []result.Result{}, nil
	}

	topK := min(req.TopK(), m.Len())
	key := cacheKey(m.stats.Fingerprint, topK, normalized)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.countOutcome(cached)
			return cached, nil
		}
	}

	results := m.rank(normalized, topK)
	if s.cache != nil {
		s.cache.Put(ctx, key, results)
	}
	s.countOutcome(results)
	return results, nil
}

func (s *Service) countOutcome(results []result.Result) {
	if len(results) == 0 {
		metrics.RecommendRequestsTotal.WithLabelValues("empty").Inc()
		return
	}
	metrics.RecommendRequestsTotal.WithLabelValues("results").Inc()
}

// cacheKey scopes cached results to one model build.
func cacheKey(fingerprint string, topK int, normalized string) string {
	return fingerprint + "|" + strconv.Itoa(topK) + "|" + normalized
}

// Stats returns the statistics of the active model.
func (s *Service) Stats() (Stats, error) {
	m := s.model.Load()
	if m == nil {
		return Stats{}, domain.ErrModelNotReady
	}
	return m.Stats(), nil
}

// Ready reports whether a model has been published.
func (s *Service) Ready() bool {
	return s.model.Load() != nil
}

// Model returns the active model, or nil before the first successful load.
func (s *Service) Model() *Model {
	return s.model.Load()
}
