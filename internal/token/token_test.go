package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		max      int
		expected []string
	}{
		{
			name:     "lowercases and preserves order",
			text:     "Build the Index BUILD again",
			max:      10,
			expected: []string{"build", "the", "index", "again"},
		},
		{
			name:     "drops single characters",
			text:     "a b c go",
			max:      10,
			expected: []string{"go"},
		},
		{
			name:     "keeps hyphens and underscores",
			text:     "chunk_id re-read path#L1-L5",
			max:      10,
			expected: []string{"chunk_id", "re-read", "path", "l1-l5"},
		},
		{
			name:     "splits on punctuation",
			text:     "foo.bar(baz, qux)",
			max:      10,
			expected: []string{"foo", "bar", "baz", "qux"},
		},
		{
			name:     "empty input",
			text:     "",
			max:      10,
			expected: nil,
		},
		{
			name:     "whitespace and symbols only",
			text:     "  !?@ . \n\t",
			max:      10,
			expected: nil,
		},
		{
			name:     "cap stops extraction",
			text:     "one two three four five",
			max:      3,
			expected: []string{"one", "two", "three"},
		},
		{
			name:     "duplicates do not consume the cap",
			text:     "same same same other",
			max:      2,
			expected: []string{"same", "other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.text, tt.max))
		})
	}
}

func TestExtract_DefaultCap(t *testing.T) {
	// Given: more unique terms than the default build cap
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		sb.WriteString("term")
		sb.WriteByte(byte('a' + i%26))
		sb.WriteString(string(rune('a' + i/26)))
		sb.WriteString(" ")
	}

	// When: extraction runs with a non-positive max
	terms := Extract(sb.String(), 0)

	// Then: the default cap bounds the result
	assert.Len(t, terms, DefaultBuildCap)
}

func TestExtract_NoDuplicates(t *testing.T) {
	terms := Extract("index index builder builder query query index", 10)

	seen := make(map[string]bool)
	for _, term := range terms {
		assert.False(t, seen[term], "duplicate term %q", term)
		seen[term] = true
	}
	assert.Equal(t, []string{"index", "builder", "query"}, terms)
}

func TestExtractQuery_UsesQueryCap(t *testing.T) {
	words := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		words = append(words, "qq"+string(rune('a'+i)))
	}

	terms := ExtractQuery(strings.Join(words, " "))
	assert.Len(t, terms, DefaultQueryCap)
}
