package stylematch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	path     string
	format   string // "csv" or "parquet"
	idColumn string
	records  []Record

	maxFeatures int
	workers     int

	driver   string // "valkey" or "redis"
	addrs    []string
	password string
	cacheTTL time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCSVFile loads the catalog from a CSV file.
func WithCSVFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.path = path
		c.format = "csv"
	})
}

// WithParquetFile loads the catalog from a Parquet file.
func WithParquetFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.path = path
		c.format = "parquet"
	})
}

// WithRecords serves the catalog from memory. It overrides any file option.
func WithRecords(records []Record) Option {
	return optionFunc(func(c *clientConfig) {
		c.records = records
	})
}

// WithIDColumn names the identifier column of a catalog file.
// Default: "p_id"; rows fall back to their position when it is absent.
func WithIDColumn(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.idColumn = name
	})
}

// WithMaxFeatures caps the vocabulary size. Default: 2000.
func WithMaxFeatures(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxFeatures = n
	})
}

// WithWorkers bounds build parallelism. Default: GOMAXPROCS.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithValkey caches ranked results in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis caches ranked results in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCacheTTL sets how long cached results live. Default: 1h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithMetrics registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
