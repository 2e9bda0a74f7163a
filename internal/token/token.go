// Package token extracts normalized lexical terms from raw text.
//
// Extraction is a pure function over the input buffer: terms are
// matched, lowercased, deduplicated in first-occurrence order, and
// capped. Chunk bodies use a larger cap at build time than query
// strings use at search time.
package token

import (
	"regexp"
	"strings"
)

// Default caps applied when the caller passes max <= 0.
const (
	DefaultBuildCap = 128
	DefaultQueryCap = 16
)

// termPattern matches runs of word characters and hyphens at least
// two characters long. Single characters are too noisy to index.
var termPattern = regexp.MustCompile(`[a-zA-Z0-9_-]{2,}`)

// Extract returns the unique normalized terms in text, preserving
// first-occurrence order, up to max terms. A max <= 0 falls back to
// DefaultBuildCap.
func Extract(text string, max int) []string {
	if max <= 0 {
		max = DefaultBuildCap
	}

	seen := make(map[string]struct{})
	var terms []string
	for _, m := range termPattern.FindAllString(text, -1) {
		term := strings.ToLower(m)
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
		if len(terms) >= max {
			break
		}
	}
	return terms
}

// ExtractQuery tokenizes a query string with the query-time cap.
func ExtractQuery(text string) []string {
	return Extract(text, DefaultQueryCap)
}
