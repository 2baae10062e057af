package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation engine Prometheus metrics.
var (
	CorpusBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylematch",
			Name:      "corpus_builds_total",
			Help:      "Total number of corpus model builds",
		},
		[]string{"status"}, // "ok" / "invalid" / "error"
	)

	CorpusBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "stylematch",
			Name:      "corpus_build_duration_seconds",
			Help:      "Corpus model build duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CorpusItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stylematch",
			Name:      "corpus_items",
			Help:      "Number of items in the active corpus model",
		},
	)

	VocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stylematch",
			Name:      "vocabulary_size",
			Help:      "Number of terms in the active vocabulary",
		},
	)

	MalformedFieldsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylematch",
			Name:      "malformed_fields_total",
			Help:      "Record fields recovered from unparseable input during corpus builds",
		},
		[]string{"field"},
	)

	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylematch",
			Name:      "recommend_requests_total",
			Help:      "Total recommendation queries by outcome",
		},
		[]string{"outcome"}, // "results" / "empty" / "not_ready"
	)

	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "stylematch",
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation query duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
	)

	ResultCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylematch",
			Name:      "result_cache_total",
			Help:      "Recommendation result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers the engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(CorpusBuildsTotal)
	prometheus.MustRegister(CorpusBuildDuration)
	prometheus.MustRegister(CorpusItems)
	prometheus.MustRegister(VocabularySize)
	prometheus.MustRegister(MalformedFieldsTotal)
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecommendDuration)
	prometheus.MustRegister(ResultCacheTotal)
	engineMetricsRegistered = true
}
