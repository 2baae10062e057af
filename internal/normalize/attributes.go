package normalize

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/stylematch/internal/domain/catalog"
)

// AttributeKeys is the fixed, ordered set of recognized attribute keys.
// Attribute tokens are emitted in this order regardless of payload order.
var AttributeKeys = []string{
	"Top Fabric",
	"Occasion",
	"Sustainable",
	"Wash Care",
	"Top Pattern",
	"Top Shape",
	"Top Type",
	"Bottom Pattern",
	"Bottom Type",
	"Bottom Closure",
}

// Attributes returns one token per recognized key holding a string value:
// the value with all whitespace removed, lowercased.
func Attributes(a catalog.Attributes) []string {
	values, err := ParseAttributes(a)
	if err != nil {
		return nil
	}
	return attributeTokens(values)
}

func attributeTokens(values map[string]string) []string {
	var tokens []string
	for _, key := range AttributeKeys {
		v, ok := values[key]
		if !ok {
			continue
		}
		if tok := lower(strings.Join(strings.Fields(v), "")); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ParseAttributes resolves an attribute payload into its string-valued entries.
// Non-string values are dropped. A serialized payload must be a JSON object or
// a Python-style dict literal; anything else yields ErrMalformedField.
func ParseAttributes(a catalog.Attributes) (map[string]string, error) {
	switch a.Kind() {
	case catalog.AttributesStructured:
		out := make(map[string]string, len(a.Structured()))
		for k, v := range a.Structured() {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
		return out, nil
	case catalog.AttributesSerialized:
		return parseSerialized(a.Serialized())
	default:
		return nil, nil
	}
}

// parseSerialized decodes a flow mapping. JSON objects and Python dict
// literals are both valid YAML flow mappings; only quoted scalars are
// strings in either notation, so unquoted values (numbers, True, None) are skipped.
func parseSerialized(raw string) (map[string]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &root); err != nil {
		return nil, fmt.Errorf("%w: attributes: %w", ErrMalformedField, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: attributes: empty document", ErrMalformedField)
	}

	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: attributes: not a mapping", ErrMalformedField)
	}

	out := make(map[string]string, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			continue
		}
		if v.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) == 0 {
			continue
		}
		out[k.Value] = v.Value
	}
	return out, nil
}
