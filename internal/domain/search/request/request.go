package request

import (
	"fmt"

	"github.com/kailas-cloud/stylematch/internal/domain"
)

// Recommendation request limits.
const (
	// MaxQueryLength is the maximum allowed query length in bytes.
	MaxQueryLength = 4096
	DefaultTopK    = 5
)

// Request is a validated recommendation query.
type Request struct {
	query string
	topK  int
}

// New validates and normalizes recommendation parameters.
// An empty query is valid and yields no results. topK <= 0 means DefaultTopK;
// larger values are kept and clamped to the corpus size at query time.
func New(query string, topK int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return Request{query: query, topK: topK}, nil
}

// Query returns the free-text query.
func (r *Request) Query() string { return r.query }

// TopK returns the maximum number of results.
func (r *Request) TopK() int { return r.topK }
