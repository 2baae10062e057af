package recommend

import (
	"context"

	"github.com/kailas-cloud/stylematch/internal/domain/catalog"
	"github.com/kailas-cloud/stylematch/internal/domain/search/result"
)

// RecordSource supplies the raw catalog rows a model is built from.
type RecordSource interface {
	Load(ctx context.Context) ([]catalog.Record, error)
}

// ResultCache stores ranked results by logical key. Implementations must
// treat their own failures as misses.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]result.Result, bool)
	Put(ctx context.Context, key string, results []result.Result)
}
