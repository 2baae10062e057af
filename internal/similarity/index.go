// Package similarity answers exact top-k cosine queries over a set of
// unit-normalized corpus vectors.
package similarity

import (
	"container/heap"
	"slices"

	"github.com/kailas-cloud/stylematch/internal/tfidf"
)

// DefaultTopK is used when a query asks for zero or fewer results.
const DefaultTopK = 5

// Hit is a ranked corpus position.
type Hit struct {
	Index int
	Score float64
}

// Index holds the corpus vectors in insertion order. It is read-only after
// construction and safe for concurrent queries.
type Index struct {
	vectors []tfidf.Vector
}

// NewIndex creates an index over vectors. The slice is not copied and must
// not be modified afterwards.
func NewIndex(vectors []tfidf.Vector) *Index {
	return &Index{vectors: vectors}
}

// Len returns the number of indexed vectors.
func (x *Index) Len() int { return len(x.vectors) }

// Query returns the topK corpus positions most similar to q, best first.
// Equal scores keep corpus order. topK is clamped to the corpus size.
// A zero query vector matches nothing.
func (x *Index) Query(q tfidf.Vector, topK int) []Hit {
	if q.IsZero() || len(x.vectors) == 0 {
		return []Hit{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	topK = min(topK, len(x.vectors))

	h := make(minHeap, 0, topK)
	for i, v := range x.vectors {
		hit := Hit{Index: i, Score: q.Dot(v)}
		if len(h) < topK {
			heap.Push(&h, hit)
			continue
		}
		if better(hit, h[0]) {
			h[0] = hit
			heap.Fix(&h, 0)
		}
	}

	out := []Hit(h)
	slices.SortFunc(out, func(a, b Hit) int {
		switch {
		case a.Index == b.Index:
			return 0
		case better(a, b):
			return -1
		default:
			return 1
		}
	})
	return out
}

// better orders hits by descending score, then ascending corpus position.
func better(a, b Hit) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

// minHeap keeps the worst retained hit at the root.
type minHeap []Hit

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return better(h[j], h[i]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(Hit)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
