package tfidf

import (
	"math"
	"slices"
)

// Entry is one non-zero component of a Vector.
type Entry struct {
	ID     int
	Weight float64
}

// Vector is a sparse feature vector with strictly ascending feature ids.
// The zero value is the all-zero vector.
type Vector struct {
	entries []Entry
}

// Len returns the number of non-zero components.
func (v Vector) Len() int { return len(v.entries) }

// IsZero reports whether the vector has no non-zero components.
func (v Vector) IsZero() bool { return len(v.entries) == 0 }

// Entries returns a copy of the non-zero components in ascending id order.
// Vectors are shared by concurrent queries and never change after Transform.
func (v Vector) Entries() []Entry { return slices.Clone(v.entries) }

// Weight returns the weight of feature id (zero when absent).
func (v Vector) Weight(id int) float64 {
	lo, hi := 0, len(v.entries)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case v.entries[mid].ID == id:
			return v.entries[mid].Weight
		case v.entries[mid].ID < id:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, e := range v.entries {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product. For unit vectors it equals cosine similarity.
func (v Vector) Dot(o Vector) float64 {
	a, b := v.entries, o.entries
	var sum float64
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i].ID == b[j].ID:
			sum += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].ID < b[j].ID:
			i++
		default:
			j++
		}
	}
	return sum
}
