package stylematch

import (
	"time"

	"github.com/kailas-cloud/stylematch/internal/domain/catalog"
	"github.com/kailas-cloud/stylematch/internal/domain/search/result"
	recommenduc "github.com/kailas-cloud/stylematch/internal/usecase/recommend"
)

// Record is one catalog row. ID, Name and Image are required.
type Record struct {
	ID          string
	Name        string
	Image       string
	Brand       string
	Description string // may contain HTML markup
	Color       string

	// Attributes holds decoded product attributes. When nil,
	// AttributesText is parsed as a mapping literal instead.
	Attributes     map[string]any
	AttributesText string

	// Price is the listed price. When nil, PriceText is parsed instead.
	Price     *float64
	PriceText string
}

// Recommendation is one ranked catalog item.
type Recommendation struct {
	ID    string
	Name  string
	Image string
	Score float64
}

// Stats describes the active model.
type Stats struct {
	Items           int
	VocabularySize  int
	MaxFeatures     int
	Fingerprint     string
	BuiltAt         time.Time
	BuildDuration   time.Duration
	MalformedFields map[string]int
}

func toInternalRecords(records []Record) []catalog.Record {
	out := make([]catalog.Record, len(records))
	for i, r := range records {
		out[i] = toInternalRecord(r)
	}
	return out
}

func toInternalRecord(r Record) catalog.Record {
	attrs := catalog.NoAttributes()
	switch {
	case r.Attributes != nil:
		attrs = catalog.StructuredAttributes(r.Attributes)
	case r.AttributesText != "":
		attrs = catalog.SerializedAttributes(r.AttributesText)
	}

	price := catalog.NoPrice()
	switch {
	case r.Price != nil:
		price = catalog.NumericPrice(*r.Price)
	case r.PriceText != "":
		price = catalog.RawPrice(r.PriceText)
	}

	return catalog.Record{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		Brand:       r.Brand,
		Description: r.Description,
		Color:       r.Color,
		Attributes:  attrs,
		Price:       price,
	}
}

func fromResults(results []result.Result) []Recommendation {
	out := make([]Recommendation, len(results))
	for i := range results {
		r := &results[i]
		out[i] = Recommendation{
			ID:    r.ID(),
			Name:  r.Name(),
			Image: r.Image(),
			Score: r.Score(),
		}
	}
	return out
}

func fromStats(s recommenduc.Stats) Stats {
	return Stats{
		Items:           s.Items,
		VocabularySize:  s.VocabularySize,
		MaxFeatures:     s.MaxFeatures,
		Fingerprint:     s.Fingerprint,
		BuiltAt:         s.BuiltAt,
		BuildDuration:   s.BuildDuration,
		MalformedFields: s.MalformedFields,
	}
}
