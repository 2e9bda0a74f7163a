// Package index builds, persists, and loads the search index.
//
// A build is a one-shot batch: scan the tree, chunk each file,
// tokenize each span, and write the whole artifact atomically. There
// is no incremental update; a new build fully supersedes the prior
// file.
package index

import (
	"fmt"
	"time"
)

// SchemaVersion is bumped whenever the artifact layout changes in a
// way old readers cannot parse.
const SchemaVersion = 1

// Chunk is one addressable retrieval unit in the persisted index.
type Chunk struct {
	ID        string   `json:"id"`
	Path      string   `json:"path"`
	Kind      string   `json:"kind"`
	Title     string   `json:"title"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Tags      []string `json:"tags"`
	Summary   string   `json:"summary"`
	Tokens    []string `json:"tokens"`
}

// Include records the resolved file-selection inputs of a build.
type Include struct {
	Roots      []string `json:"roots"`
	Extensions []string `json:"extensions"`
}

// Exclude records the resolved exclusion inputs of a build.
type Exclude struct {
	Dirs  []string `json:"dirs"`
	Globs []string `json:"globs"`
}

// Index is the persisted artifact. Items keep discovery order.
type Index struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
	Root        string    `json:"root"`
	Include     Include   `json:"include"`
	Exclude     Exclude   `json:"exclude"`
	Items       []Chunk   `json:"items"`
}

// ChunkID builds the canonical chunk identifier for a line span.
func ChunkID(path string, startLine, endLine int) string {
	return fmt.Sprintf("%s#L%d-L%d", path, startLine, endLine)
}
