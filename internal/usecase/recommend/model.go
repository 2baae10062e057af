package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/stylematch/internal/document"
	"github.com/kailas-cloud/stylematch/internal/domain"
	"github.com/kailas-cloud/stylematch/internal/domain/catalog"
	"github.com/kailas-cloud/stylematch/internal/domain/search/result"
	"github.com/kailas-cloud/stylematch/internal/normalize"
	"github.com/kailas-cloud/stylematch/internal/similarity"
	"github.com/kailas-cloud/stylematch/internal/tfidf"
)

// Fields reported for recovered rows, alongside the normalizer's fields.
const (
	// FieldRow marks a record dropped for lacking a name or image.
	FieldRow = "row"
	// FieldID marks a record whose duplicate id was suffixed with its position.
	FieldID = "id"
)

// BuildOptions tunes a model build.
type BuildOptions struct {
	// MaxFeatures caps the vocabulary; <= 0 means tfidf.DefaultMaxFeatures.
	MaxFeatures int
	// Workers bounds build parallelism; <= 0 means GOMAXPROCS.
	Workers int
}

// MalformedField identifies one field recovered from unparseable input.
type MalformedField struct {
	ItemID string
	Field  string
}

// Stats describes a built model.
type Stats struct {
	Items           int
	VocabularySize  int
	MaxFeatures     int
	Fingerprint     string
	BuiltAt         time.Time
	BuildDuration   time.Duration
	MalformedFields map[string]int
}

// Model is an immutable fitted corpus: items, their documents and vectors,
// the vocabulary and the similarity index over them.
type Model struct {
	items      []catalog.Item
	documents  []string
	vectorizer *tfidf.Vectorizer
	index      *similarity.Index
	malformed  []MalformedField
	stats      Stats
}

// Build fits a model over records. Rows without a name or image are
// dropped and duplicate ids are made unique; both are reported as malformed
// fields. Only a corpus with no usable rows is rejected.
func Build(ctx context.Context, records []catalog.Record, opts BuildOptions) (*Model, error) {
	start := time.Now()

	maxFeatures := opts.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = tfidf.DefaultMaxFeatures
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	items, malformed, err := validate(records)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}

	n := len(items)
	docs := make([]string, n)
	malformedPerItem := make([][]string, n)
	err = parallel(ctx, n, workers, func(i int) {
		f := normalize.ItemFields(&items[i])
		docs[i] = document.Assemble(&items[i], f)
		malformedPerItem[i] = f.Malformed
	})
	if err != nil {
		return nil, fmt.Errorf("normalize corpus: %w", err)
	}

	vocab, err := tfidf.Fit(docs, maxFeatures)
	if err != nil {
		return nil, fmt.Errorf("fit vocabulary: %w", err)
	}
	vectorizer := tfidf.NewVectorizer(vocab)

	vectors := make([]tfidf.Vector, n)
	err = parallel(ctx, n, workers, func(i int) {
		vectors[i] = vectorizer.Transform(docs[i])
	})
	if err != nil {
		return nil, fmt.Errorf("vectorize corpus: %w", err)
	}

	for i, fields := range malformedPerItem {
		for _, field := range fields {
			malformed = append(malformed, MalformedField{ItemID: items[i].ID(), Field: field})
		}
	}
	counts := make(map[string]int)
	for _, mf := range malformed {
		counts[mf.Field]++
	}

	return &Model{
		items:      items,
		documents:  docs,
		vectorizer: vectorizer,
		index:      similarity.NewIndex(vectors),
		malformed:  malformed,
		stats: Stats{
			Items:           n,
			VocabularySize:  vocab.Len(),
			MaxFeatures:     maxFeatures,
			Fingerprint:     fingerprint(maxFeatures, items, docs),
			BuiltAt:         time.Now().UTC(),
			BuildDuration:   time.Since(start),
			MalformedFields: counts,
		},
	}, nil
}

// validate turns records into items. A record without an id gets its
// position as id; a repeated id gets "#<position>" appended.
func validate(records []catalog.Record) ([]catalog.Item, []MalformedField, error) {
	if len(records) == 0 {
		return nil, nil, domain.NewDataError("empty corpus")
	}

	items := make([]catalog.Item, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	var malformed []MalformedField

	for i, r := range records {
		if strings.TrimSpace(r.ID) == "" {
			r.ID = strconv.Itoa(i)
		}
		_, dup := seen[r.ID]
		if dup {
			r.ID = uniqueID(r.ID, i, seen)
		}
		it, err := catalog.New(r)
		if err != nil {
			malformed = append(malformed, MalformedField{ItemID: r.ID, Field: FieldRow})
			continue
		}
		if dup {
			malformed = append(malformed, MalformedField{ItemID: r.ID, Field: FieldID})
		}
		seen[r.ID] = struct{}{}
		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, nil, domain.NewDataError("no usable records",
			fmt.Sprintf("all %d records lack a name or image", len(records)))
	}
	return items, malformed, nil
}

func uniqueID(id string, pos int, seen map[string]struct{}) string {
	candidate := id + "#" + strconv.Itoa(pos)
	for n := 1; ; n++ {
		if _, taken := seen[candidate]; !taken {
			return candidate
		}
		candidate = id + "#" + strconv.Itoa(pos) + "." + strconv.Itoa(n)
	}
}

// parallel runs fn for every index in [0, n) on at most workers goroutines.
func parallel(ctx context.Context, n, workers int, fn func(i int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := max(1, n/(workers*4))
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}

func fingerprint(maxFeatures int, items []catalog.Item, docs []string) string {
	h := sha256.New()
	fmt.Fprintf(h, "max_features=%d\n", maxFeatures)
	for i := range items {
		it := &items[i]
		fmt.Fprintf(h, "%s\x1f%s\x1f%s\x1f%s\n", it.ID(), it.Name(), it.Image(), docs[i])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Recommend returns up to topK items most similar to a free-text query.
// topK <= 0 means similarity.DefaultTopK.
func (m *Model) Recommend(query string, topK int) []result.Result {
	return m.rank(strings.Join(normalize.Text(query), " "), topK)
}

// rank scores an already normalized query.
func (m *Model) rank(normalized string, topK int) []result.Result {
	if normalized == "" {
		return []result.Result{}
	}
	hits := m.index.Query(m.vectorizer.Transform(normalized), topK)
	out := make([]result.Result, len(hits))
	for i, h := range hits {
		it := &m.items[h.Index]
		out[i] = result.New(it.ID(), it.Name(), it.Image(), h.Score)
	}
	return out
}

// Stats returns the build statistics.
func (m *Model) Stats() Stats {
	s := m.stats
	s.MalformedFields = maps.Clone(m.stats.MalformedFields)
	return s
}

// Len returns the number of items.
func (m *Model) Len() int { return len(m.items) }

// Document returns the assembled document of the i-th item.
func (m *Model) Document(i int) string { return m.documents[i] }

// Item returns the i-th item.
func (m *Model) Item(i int) catalog.Item { return m.items[i] }

// Malformed lists the fields recovered from unparseable input during the build.
func (m *Model) Malformed() []MalformedField { return m.malformed }

// Vocabulary returns the fitted vocabulary.
func (m *Model) Vocabulary() *tfidf.Vocabulary { return m.vectorizer.Vocabulary() }
