// Package tfidf builds a term vocabulary from a corpus and turns documents
// into L2-normalized TF-IDF vectors over it.
package tfidf

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxFeatures caps the vocabulary when no explicit cap is configured.
const DefaultMaxFeatures = 2000

// ErrEmptyCorpus is returned when fitting on zero documents.
var ErrEmptyCorpus = errors.New("tfidf: empty corpus")

// Vocabulary is the immutable term index of a fitted corpus.
// Ids 0..Len()-1 are assigned by descending document frequency, ties broken
// by ascending term.
type Vocabulary struct {
	terms   []string
	ids     map[string]int
	df      []int
	idf     []float64
	numDocs int
}

// Analyze splits a document into terms: lowercase, whitespace separated.
func Analyze(doc string) []string {
	return strings.Fields(cases.Lower(language.Und).String(doc))
}

// Fit builds a vocabulary over docs, keeping at most maxFeatures terms.
// maxFeatures <= 0 means DefaultMaxFeatures.
func Fit(docs []string, maxFeatures int) (*Vocabulary, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	df := make(map[string]int)
	seen := make(map[string]struct{})
	for _, doc := range docs {
		clear(seen)
		for _, term := range Analyze(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	slices.SortFunc(terms, func(a, b string) int {
		if c := cmp.Compare(df[b], df[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	v := &Vocabulary{
		terms:   terms,
		ids:     make(map[string]int, len(terms)),
		df:      make([]int, len(terms)),
		idf:     make([]float64, len(terms)),
		numDocs: len(docs),
	}
	n := float64(len(docs))
	for id, term := range terms {
		v.ids[term] = id
		v.df[id] = df[term]
		v.idf[id] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v, nil
}

// Len returns the number of kept terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// NumDocs returns the size of the fitted corpus.
func (v *Vocabulary) NumDocs() int { return v.numDocs }

// ID returns the feature id of term.
func (v *Vocabulary) ID(term string) (int, bool) {
	id, ok := v.ids[term]
	return id, ok
}

// Term returns the term with the given id.
func (v *Vocabulary) Term(id int) string { return v.terms[id] }

// DocFreq returns the document frequency of the term with the given id.
func (v *Vocabulary) DocFreq(id int) int { return v.df[id] }

// IDF returns the smoothed inverse document frequency ln((1+N)/(1+df)) + 1.
func (v *Vocabulary) IDF(id int) float64 { return v.idf[id] }

// Terms returns a copy of the kept terms in id order.
func (v *Vocabulary) Terms() []string { return slices.Clone(v.terms) }
