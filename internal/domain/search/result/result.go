package result

// Result is a single recommended item.
type Result struct {
	id    string
	name  string
	image string
	score float64
}

// New creates a recommendation result.
func New(id, name, image string, score float64) Result {
	return Result{id: id, name: name, image: image, score: score}
}

// ID returns the item identifier.
func (r *Result) ID() string { return r.id }

// Name returns the item display name.
func (r *Result) Name() string { return r.name }

// Image returns the item image reference.
func (r *Result) Image() string { return r.image }

// Score returns the cosine similarity to the query.
func (r *Result) Score() float64 { return r.score }
