package health

import "context"

// ModelChecker reports whether a corpus model is published.
type ModelChecker interface {
	Ready() bool
}

// CachePinger checks result cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
