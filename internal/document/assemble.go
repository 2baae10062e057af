// Package document flattens a normalized catalog item into the token
// sequence consumed by the vectorizer.
package document

import (
	"strings"

	"github.com/kailas-cloud/stylematch/internal/domain/catalog"
	"github.com/kailas-cloud/stylematch/internal/normalize"
)

// MissingValue stands in for an absent brand or color, so "no brand" is a
// term of its own rather than a gap.
const MissingValue = "nan"

// Assemble joins brand, description tokens, color, attribute tokens and the
// price bucket with single spaces.
func Assemble(it *catalog.Item, f normalize.Fields) string {
	parts := [5]string{
		scalar(it.Brand()),
		strings.Join(f.Description, " "),
		scalar(it.Color()),
		strings.Join(f.Attributes, " "),
		strings.Join(f.Price, " "),
	}
	return strings.Join(parts[:], " ")
}

func scalar(s string) string {
	if strings.TrimSpace(s) == "" {
		return MissingValue
	}
	return s
}
