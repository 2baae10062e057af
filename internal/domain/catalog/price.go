package catalog

// PriceKind tells how the price of a record was supplied.
type PriceKind int

// Price kinds.
const (
	PriceMissing PriceKind = iota
	PriceNumeric
	PriceRaw
)

// Price is the listed price of a record: a number, unparsed text, or nothing.
type Price struct {
	kind  PriceKind
	value float64
	raw   string
}

// NoPrice returns a missing price.
func NoPrice() Price { return Price{} }

// NumericPrice wraps a decoded price.
func NumericPrice(v float64) Price { return Price{kind: PriceNumeric, value: v} }

// RawPrice wraps unparsed price text. Empty text is missing.
func RawPrice(s string) Price {
	if s == "" {
		return Price{}
	}
	return Price{kind: PriceRaw, raw: s}
}

// Kind returns the price kind.
func (p Price) Kind() PriceKind { return p.kind }

// Value returns the numeric price (zero unless Kind is PriceNumeric).
func (p Price) Value() float64 { return p.value }

// Raw returns the unparsed text (empty unless Kind is PriceRaw).
func (p Price) Raw() string { return p.raw }
