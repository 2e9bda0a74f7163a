package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/knowgrep/knowgrep/internal/index"
)

// DefaultSnippetLines bounds how many lines of a chunk are rendered.
const DefaultSnippetLines = 40

const snippetCacheSize = 64

// SnippetRenderer re-reads chunk source files and renders bounded,
// line-numbered excerpts. File contents are cached so adjacent chunks
// of the same file read it once.
type SnippetRenderer struct {
	root     string
	maxLines int
	cache    *lru.Cache[string, []string]
}

// NewSnippetRenderer creates a renderer rooted at the directory the
// index was built against.
func NewSnippetRenderer(root string, maxLines int) (*SnippetRenderer, error) {
	if maxLines <= 0 {
		maxLines = DefaultSnippetLines
	}
	cache, err := lru.New[string, []string](snippetCacheSize)
	if err != nil {
		return nil, err
	}
	return &SnippetRenderer{root: root, maxLines: maxLines, cache: cache}, nil
}

// Render returns the chunk's source lines from its start line to at
// most maxLines later, each prefixed with its 1-based line number. A
// file deleted since the build fails only this snippet.
func (r *SnippetRenderer) Render(c index.Chunk) (string, error) {
	lines, err := r.fileLines(c.Path)
	if err != nil {
		return "", fmt.Errorf("read snippet source %s: %w", c.Path, err)
	}

	start := c.StartLine
	end := c.EndLine
	if max := start + r.maxLines - 1; end > max {
		end = max
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return "", fmt.Errorf("chunk %s out of range for current file", c.ID)
	}

	var sb strings.Builder
	for i := start; i <= end; i++ {
		fmt.Fprintf(&sb, "%5d | %s\n", i, lines[i-1])
	}
	return sb.String(), nil
}

func (r *SnippetRenderer) fileLines(rel string) ([]string, error) {
	if lines, ok := r.cache.Get(rel); ok {
		return lines, nil
	}

	content, err := os.ReadFile(filepath.Join(r.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	r.cache.Add(rel, lines)
	return lines, nil
}
