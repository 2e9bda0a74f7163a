// Package chunk splits file content into addressable line spans.
//
// Documentation files are split on their heading structure; all other
// text is partitioned into fixed-size line windows. Spans carry only
// line bounds and a title; token extraction and summarization happen
// downstream in the index builder.
package chunk

// Kind classifies a file by what its extension suggests about its
// content, which in turn selects the splitting strategy.
type Kind string

const (
	KindDoc    Kind = "doc"
	KindConfig Kind = "config"
	KindScript Kind = "script"
	KindCode   Kind = "code"
)

// Span is one addressable slice of a file. Line bounds are 1-based
// and inclusive.
type Span struct {
	Title     string
	StartLine int
	EndLine   int
}

// DefaultWindowLines is the window size for non-heading splitting.
const DefaultWindowLines = 200
