package tfidf

import (
	"math"
	"reflect"
	"sync"
	"testing"
)

const tolerance = 1e-9

func fitted(t *testing.T, docs []string) *Vectorizer {
	t.Helper()
	v, err := Fit(docs, 0)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return NewVectorizer(v)
}

func TestTransform_UnitNorm(t *testing.T) {
	docs := []string{
		"Zara red cotton dress Red casual priceaffordable",
		"H&M blue denim jeans Blue priceveryaffordable",
		"nan floral maxi dress Pink party pricemoderate",
	}
	z := fitted(t, docs)

	for _, d := range docs {
		vec := z.Transform(d)
		if vec.IsZero() {
			t.Fatalf("Transform(%q) is zero", d)
		}
		if math.Abs(vec.Norm()-1) > tolerance {
			t.Errorf("norm of %q = %v, want 1", d, vec.Norm())
		}
		for _, e := range vec.Entries() {
			if e.Weight <= 0 {
				t.Errorf("non-positive weight %v for id %d", e.Weight, e.ID)
			}
		}
	}
}

func TestTransform_UnknownTermsDropped(t *testing.T) {
	z := fitted(t, []string{"red dress", "blue shirt"})

	if vec := z.Transform("velvet tuxedo"); !vec.IsZero() {
		t.Errorf("expected zero vector, got %v", vec.Entries())
	}
	if vec := z.Transform(""); !vec.IsZero() {
		t.Errorf("expected zero vector for empty text, got %v", vec.Entries())
	}

	withUnknown := z.Transform("red velvet")
	only := z.Transform("red")
	if !reflect.DeepEqual(withUnknown, only) {
		t.Errorf("unknown terms changed the vector: %v vs %v", withUnknown.Entries(), only.Entries())
	}
}

func TestTransform_Weights(t *testing.T) {
	z := fitted(t, []string{"a b", "a", "a"})
	vocab := z.Vocabulary()
	a, _ := vocab.ID("a")
	b, _ := vocab.ID("b")

	vec := z.Transform("a a b")
	wa := 2 * vocab.IDF(a)
	wb := 1 * vocab.IDF(b)
	norm := math.Sqrt(wa*wa + wb*wb)

	if got := vec.Weight(a); math.Abs(got-wa/norm) > tolerance {
		t.Errorf("weight(a) = %v, want %v", got, wa/norm)
	}
	if got := vec.Weight(b); math.Abs(got-wb/norm) > tolerance {
		t.Errorf("weight(b) = %v, want %v", got, wb/norm)
	}
	if got := vec.Weight(99); got != 0 {
		t.Errorf("weight(99) = %v, want 0", got)
	}
}

func TestTransform_EntriesSorted(t *testing.T) {
	z := fitted(t, []string{"e d c b a", "a b", "a"})
	entries := z.Transform("e d c b a").Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].ID >= entries[i].ID {
			t.Fatalf("entries not strictly ascending: %v", entries)
		}
	}
}

func TestVector_EntriesIsCopy(t *testing.T) {
	z := fitted(t, []string{"red dress", "blue shirt"})
	vec := z.Transform("red dress")
	norm := vec.Norm()

	entries := vec.Entries()
	for i := range entries {
		entries[i].Weight = 42
	}

	if got := vec.Norm(); math.Abs(got-norm) > 1e-12 {
		t.Errorf("mutating Entries changed the vector: norm %v, want %v", got, norm)
	}
}

func TestTransform_Concurrent(t *testing.T) {
	z := fitted(t, []string{"red dress", "blue shirt", "green scarf"})
	want := z.Transform("red shirt")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if got := z.Transform("red shirt"); !reflect.DeepEqual(got, want) {
					t.Error("concurrent transform diverged")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestVector_Dot(t *testing.T) {
	a := Vector{entries: []Entry{{0, 0.6}, {2, 0.8}}}
	b := Vector{entries: []Entry{{1, 1}, {2, 0.5}}}

	if got := a.Dot(b); math.Abs(got-0.4) > tolerance {
		t.Errorf("Dot = %v, want 0.4", got)
	}
	if got := a.Dot(a); math.Abs(got-1) > tolerance {
		t.Errorf("self Dot = %v, want 1", got)
	}
	if got := a.Dot(Vector{}); got != 0 {
		t.Errorf("Dot(zero) = %v", got)
	}
}
