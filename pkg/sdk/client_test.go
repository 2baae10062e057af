package stylematch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func price(v float64) *float64 { return &v }

func sampleRecords() []Record {
	return []Record{
		{
			ID: "1", Name: "Zara Red Cotton Dress", Image: "img/1.jpg",
			Brand: "Zara", Color: "Red",
			Description:    "<p>A <b>red</b> cotton dress for summer</p>",
			AttributesText: `{'Top Fabric': 'Cotton', 'Occasion': 'Casual'}`,
			Price:          price(2500),
		},
		{
			ID: "2", Name: "Blue Denim Jeans", Image: "img/2.jpg",
			Brand: "Levis", Color: "Blue",
			Description: "Slim fit denim jeans",
			Attributes:  map[string]any{"Bottom Type": "Jeans"},
			PriceText:   "3200",
		},
		{
			ID: "3", Name: "Black Leather Jacket", Image: "img/3.jpg",
			Brand: "Mango", Color: "Black",
			Description: "Biker jacket in genuine leather",
			Price:       price(9500),
		},
	}
}

const sampleCSV = `p_id,name,products,price,colour,brand,img,ratingCount,avg_rating,description,p_attributes
101,Black Leather Jacket,Jacket,9500.0,Black,Mango,http://img/101.jpg,10,4.1,Biker jacket in genuine leather,"{'Top Type': 'Jacket'}"
102,Red Cotton Dress,Dress,2500.0,Red,Zara,http://img/102.jpg,,,<p>Red cotton summer dress</p>,"{'Top Fabric': 'Cotton'}"
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestNew_NoCatalog(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no catalog provided")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	cfg := &clientConfig{path: "catalog.xlsx"}
	if _, err := createSource(cfg); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNew_EmptyCorpus(t *testing.T) {
	_, err := New(context.Background(), WithRecords([]Record{}))
	if !errors.Is(err, ErrInvalidCorpus) {
		t.Fatalf("expected ErrInvalidCorpus, got %v", err)
	}
}

func TestNew_BadRowsDoNotFailCorpus(t *testing.T) {
	records := sampleRecords()
	records[1].Image = ""
	records[2].ID = records[0].ID

	c, err := New(context.Background(), WithRecords(records))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Items != 2 {
		t.Errorf("expected 2 items, got %d", stats.Items)
	}
	if stats.MalformedFields["row"] != 1 || stats.MalformedFields["id"] != 1 {
		t.Errorf("unexpected malformed counts: %v", stats.MalformedFields)
	}

	recs, err := c.Recommend(context.Background(), "leather jacket", 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "1#2" {
		t.Errorf("unexpected recommendations: %+v", recs)
	}
}

func TestNew_NoUsableRows(t *testing.T) {
	_, err := New(context.Background(), WithRecords([]Record{{ID: "1", Name: "No Image"}}))
	var de *DataError
	if !errors.As(err, &de) {
		t.Fatalf("expected DataError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidCorpus) {
		t.Error("DataError should match ErrInvalidCorpus")
	}
}

func TestClient_Recommend(t *testing.T) {
	c, err := New(context.Background(), WithRecords(sampleRecords()), WithWorkers(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	recs, err := c.Recommend(context.Background(), "leather jacket", 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].ID != "3" || recs[0].Name != "Black Leather Jacket" || recs[0].Image != "img/3.jpg" {
		t.Errorf("unexpected top recommendation: %+v", recs[0])
	}
	if recs[0].Score <= recs[1].Score {
		t.Errorf("results not ordered by score: %v", recs)
	}
}

func TestClient_Recommend_EmptyQuery(t *testing.T) {
	c, err := New(context.Background(), WithRecords(sampleRecords()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	recs, err := c.Recommend(context.Background(), "   ", 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no recommendations, got %v", recs)
	}
}

func TestClient_Recommend_TopKAboveCorpusSize(t *testing.T) {
	c, err := New(context.Background(), WithRecords(sampleRecords()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	recs, err := c.Recommend(context.Background(), "red dress", 1000)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != len(sampleRecords()) {
		t.Errorf("expected %d recommendations, got %d", len(sampleRecords()), len(recs))
	}
}

func TestClient_CSVFile(t *testing.T) {
	c, err := New(context.Background(), WithCSVFile(writeCSV(t, sampleCSV)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Items != 2 {
		t.Errorf("expected 2 items, got %d", stats.Items)
	}
	if stats.Fingerprint == "" {
		t.Error("expected non-empty fingerprint")
	}

	recs, err := c.Recommend(context.Background(), "summer dress", 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "102" {
		t.Errorf("unexpected recommendations: %+v", recs)
	}
}

func TestClient_Reload_KeepsModelOnFailure(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	c, err := New(context.Background(), WithCSVFile(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before, _ := c.Stats()

	if err := os.WriteFile(path, []byte("name,img\nonly,two\n"), 0o600); err != nil {
		t.Fatalf("rewrite csv: %v", err)
	}
	if _, err := c.Reload(context.Background()); !errors.Is(err, ErrInvalidCorpus) {
		t.Fatalf("expected ErrInvalidCorpus, got %v", err)
	}

	after, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if after.Fingerprint != before.Fingerprint {
		t.Error("failed reload replaced the active model")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}
	reg := prometheus.NewRegistry()
	logger := slog.Default()
	opts := []Option{
		WithParquetFile("catalog.parquet"),
		WithIDColumn("sku"),
		WithMaxFeatures(500),
		WithWorkers(4),
		WithValkey("localhost:6379", "secret"),
		WithCacheTTL(time.Minute),
		WithLogger(logger),
		WithMetrics(reg),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.path != "catalog.parquet" || cfg.format != "parquet" {
		t.Errorf("path/format = %q/%q", cfg.path, cfg.format)
	}
	if cfg.idColumn != "sku" {
		t.Errorf("idColumn = %q", cfg.idColumn)
	}
	if cfg.maxFeatures != 500 || cfg.workers != 4 {
		t.Errorf("maxFeatures/workers = %d/%d", cfg.maxFeatures, cfg.workers)
	}
	if cfg.driver != "valkey" || len(cfg.addrs) != 1 || cfg.password != "secret" {
		t.Errorf("unexpected cache config: %+v", cfg)
	}
	if cfg.cacheTTL != time.Minute {
		t.Errorf("cacheTTL = %v", cfg.cacheTTL)
	}
	if cfg.logger != logger || cfg.metricsReg != reg {
		t.Error("logger or registerer not applied")
	}

	WithRedis("localhost:6380", "").apply(cfg)
	if cfg.driver != "redis" || cfg.addrs[0] != "localhost:6380" {
		t.Errorf("WithRedis not applied: %+v", cfg)
	}
	WithCSVFile("a.csv").apply(cfg)
	if cfg.format != "csv" {
		t.Errorf("format = %q, want csv", cfg.format)
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(context.Background(), WithRecords(sampleRecords()), WithMetrics(reg))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _ = c.Recommend(context.Background(), "dress", 1)
	_, _ = c.Recommend(context.Background(), strings.Repeat("a", 5000), 1)

	ops := c.obs.metrics.operations
	if got := testutil.ToFloat64(ops.WithLabelValues("reload", "ok")); got != 1 {
		t.Errorf("reload ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("recommend", "ok")); got != 1 {
		t.Errorf("recommend ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("recommend", "invalid")); got != 1 {
		t.Errorf("recommend invalid = %v, want 1", got)
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("recommend", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("recommend", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "stylematch_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("stylematch_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("expected the registered collector to be reused")
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("reload", time.Now(), nil, "items", 3)
	obs.observe("reload", time.Now(), errors.New("test error"))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrInvalidCorpus, "invalid"},
		{ErrInvalidRequest, "invalid"},
		{ErrModelNotReady, "error"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := status(tt.err); got != tt.want {
			t.Errorf("status(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
