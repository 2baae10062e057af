package normalize

import "github.com/kailas-cloud/stylematch/internal/domain/catalog"

// Field names reported in Fields.Malformed.
const (
	FieldAttributes = "attributes"
	FieldPrice      = "price"
)

// Fields holds the normalized token lists of one item.
type Fields struct {
	Description []string
	Attributes  []string
	Price       []string

	// Malformed lists the fields that were recovered from unparseable input.
	Malformed []string
}

// ItemFields normalizes every tokenized field of an item.
func ItemFields(it *catalog.Item) Fields {
	f := Fields{Description: Text(it.Description())}

	values, err := ParseAttributes(it.Attributes())
	if err != nil {
		f.Malformed = append(f.Malformed, FieldAttributes)
	} else {
		f.Attributes = attributeTokens(values)
	}

	v, ok, err := ParsePrice(it.Price())
	switch {
	case err != nil:
		f.Malformed = append(f.Malformed, FieldPrice)
	case ok:
		f.Price = []string{PriceBucket(v)}
	}
	return f
}
