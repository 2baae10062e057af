package tfidf

import (
	"math"
	"slices"
)

// Vectorizer turns text into TF-IDF vectors over a fitted vocabulary.
// It holds no mutable state and is safe for concurrent use.
type Vectorizer struct {
	vocab *Vocabulary
}

// NewVectorizer creates a vectorizer bound to vocab.
func NewVectorizer(vocab *Vocabulary) *Vectorizer {
	return &Vectorizer{vocab: vocab}
}

// Vocabulary returns the bound vocabulary.
func (z *Vectorizer) Vocabulary() *Vocabulary { return z.vocab }

// Transform weights each known term by raw count × idf and L2-normalizes the
// result. Unknown terms are dropped; text without known terms yields the zero vector.
func (z *Vectorizer) Transform(text string) Vector {
	counts := make(map[int]int)
	for _, term := range Analyze(text) {
		if id, ok := z.vocab.ID(term); ok {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	entries := make([]Entry, 0, len(counts))
	for id, n := range counts {
		entries = append(entries, Entry{ID: id, Weight: float64(n) * z.vocab.IDF(id)})
	}
	// Sorting before summing keeps the norm bit-identical across runs.
	slices.SortFunc(entries, func(a, b Entry) int { return a.ID - b.ID })

	var sum float64
	for _, e := range entries {
		sum += e.Weight * e.Weight
	}
	norm := math.Sqrt(sum)
	for i := range entries {
		entries[i].Weight /= norm
	}

	return Vector{entries: entries}
}
