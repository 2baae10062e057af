// Package normalize turns raw catalog fields into flat token lists.
// Every normalizer is pure and fails soft: malformed input yields no tokens.
package normalize

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrMalformedField signals an unparseable field value. It is recovered
// locally by the normalizers and never fails a corpus build.
var ErrMalformedField = errors.New("malformed field")

// Text strips markup from raw, lowercases the visible text and splits it on whitespace.
func Text(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Fields(lower(visibleText(raw)))
}

// visibleText concatenates the text nodes of an HTML fragment, skipping
// script and style contents, comments and all tags and attributes.
// Adjacent text nodes are joined without a separator.
func visibleText(raw string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer failure: keep whatever text was read.
			return sb.String()

		case html.StartTagToken:
			if isHiddenTag(tokenizer) {
				skipDepth++
			}

		case html.EndTagToken:
			if isHiddenTag(tokenizer) && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth == 0 {
				sb.WriteString(tokenizer.Token().Data)
			}
		}
	}
}

func isHiddenTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

// lower lowercases s. A cases.Caser is stateful, so one is created per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
