package catalog

import "maps"

// AttributesKind tells how the attribute payload of a record was supplied.
type AttributesKind int

// Attribute payload kinds.
const (
	AttributesMissing AttributesKind = iota
	AttributesStructured
	AttributesSerialized
)

// Attributes is the product attribute payload of a record: either a
// structured key/value map, its serialized textual form, or nothing.
type Attributes struct {
	kind       AttributesKind
	structured map[string]any
	serialized string
}

// NoAttributes returns a missing attribute payload.
func NoAttributes() Attributes { return Attributes{} }

// StructuredAttributes wraps an already decoded attribute map. A nil map is missing.
func StructuredAttributes(m map[string]any) Attributes {
	if m == nil {
		return Attributes{}
	}
	return Attributes{kind: AttributesStructured, structured: maps.Clone(m)}
}

// SerializedAttributes wraps a textual attribute payload. Empty text is missing.
func SerializedAttributes(s string) Attributes {
	if s == "" {
		return Attributes{}
	}
	return Attributes{kind: AttributesSerialized, serialized: s}
}

// Kind returns the payload kind.
func (a Attributes) Kind() AttributesKind { return a.kind }

// Structured returns the decoded map (nil unless Kind is AttributesStructured).
func (a Attributes) Structured() map[string]any { return a.structured }

// Serialized returns the raw text (empty unless Kind is AttributesSerialized).
func (a Attributes) Serialized() string { return a.serialized }
