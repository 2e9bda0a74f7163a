package search

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowgrep/knowgrep/internal/index"
)

func fixtureIndex(chunks ...index.Chunk) *index.Index {
	return &index.Index{Version: index.SchemaVersion, Items: chunks}
}

func chunkWith(id string, tokens ...string) index.Chunk {
	return index.Chunk{
		ID:        id,
		Path:      id,
		StartLine: 1,
		EndLine:   1,
		Tokens:    tokens,
	}
}

func TestSearch_RanksMatchingChunkFirst(t *testing.T) {
	// Given: two sections, only one mentioning the query term
	idx := fixtureIndex(
		chunkWith("guide.md#L1-L5", "intro", "welcome", "overview"),
		chunkWith("guide.md#L6-L12", "usage", "run", "tool"),
	)

	results := NewEngine(idx).Search("usage", 10)

	require.Len(t, results, 1)
	assert.Equal(t, "guide.md#L6-L12", results[0].Chunk.ID)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestSearch_AbsentTermReturnsEmptySuccess(t *testing.T) {
	idx := fixtureIndex(chunkWith("a.md#L1-L1", "alpha", "beta"))

	results := NewEngine(idx).Search("nonexistent", 10)

	assert.Empty(t, results)
}

func TestSearch_EmptyQueryReturnsEmpty(t *testing.T) {
	idx := fixtureIndex(chunkWith("a.md#L1-L1", "alpha"))

	for _, query := range []string{"", "   ", "! ? .", "a b c"} {
		assert.Empty(t, NewEngine(idx).Search(query, 10), "query %q", query)
	}
}

func TestSearch_CoverageFactorRewardsBroaderMatches(t *testing.T) {
	// Given: X shares three query terms, Y shares only one
	idx := fixtureIndex(
		chunkWith("y.md#L1-L1", "database", "storage", "disk"),
		chunkWith("x.md#L1-L1", "database", "schema", "migration"),
	)

	results := NewEngine(idx).Search("database schema migration", 10)

	require.Len(t, results, 2)
	assert.Equal(t, "x.md#L1-L1", results[0].Chunk.ID)
	assert.Equal(t, "y.md#L1-L1", results[1].Chunk.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearch_RareTermsWeighMore(t *testing.T) {
	// "common" appears everywhere, "rare" in one chunk
	idx := fixtureIndex(
		chunkWith("a.md#L1-L1", "common", "filler"),
		chunkWith("b.md#L1-L1", "common", "noise"),
		chunkWith("c.md#L1-L1", "common", "rare"),
		chunkWith("d.md#L1-L1", "common", "static"),
	)

	common := NewEngine(idx).Search("common", 10)
	rare := NewEngine(idx).Search("rare", 10)

	require.Len(t, rare, 1)
	require.NotEmpty(t, common)
	assert.Greater(t, rare[0].Score, common[0].Score)
}

func TestSearch_SortedDescendingWithStableTies(t *testing.T) {
	// Identical token sets produce identical scores; index order wins
	idx := fixtureIndex(
		chunkWith("first.md#L1-L1", "term", "aa"),
		chunkWith("second.md#L1-L1", "term", "bb"),
		chunkWith("third.md#L1-L1", "term", "cc"),
	)

	results := NewEngine(idx).Search("term", 10)

	require.Len(t, results, 3)
	assert.True(t, sort.SliceIsSorted(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	}))
	assert.Equal(t, "first.md#L1-L1", results[0].Chunk.ID)
	assert.Equal(t, "second.md#L1-L1", results[1].Chunk.ID)
	assert.Equal(t, "third.md#L1-L1", results[2].Chunk.ID)
}

func TestSearch_LimitTruncates(t *testing.T) {
	var chunks []index.Chunk
	for i := 0; i < 25; i++ {
		chunks = append(chunks, chunkWith(string(rune('a'+i))+".md#L1-L1", "shared"))
	}
	idx := fixtureIndex(chunks...)

	assert.Len(t, NewEngine(idx).Search("shared", 5), 5)
	// Default applies when limit is non-positive
	assert.Len(t, NewEngine(idx).Search("shared", 0), DefaultLimit)
}

func TestSnippetRenderer_NumbersLines(t *testing.T) {
	tmpDir := t.TempDir()
	content := "first line\nsecond line\nthird line\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "file.md"), []byte(content), 0o644))

	r, err := NewSnippetRenderer(tmpDir, 40)
	require.NoError(t, err)

	out, err := r.Render(index.Chunk{ID: "file.md#L2-L3", Path: "file.md", StartLine: 2, EndLine: 3})
	require.NoError(t, err)

	assert.Equal(t, "    2 | second line\n    3 | third line\n", out)
}

func TestSnippetRenderer_BoundsLongChunks(t *testing.T) {
	tmpDir := t.TempDir()
	var content string
	for i := 1; i <= 100; i++ {
		content += "line\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "big.txt"), []byte(content), 0o644))

	r, err := NewSnippetRenderer(tmpDir, 5)
	require.NoError(t, err)

	out, err := r.Render(index.Chunk{Path: "big.txt", StartLine: 10, EndLine: 90})
	require.NoError(t, err)

	assert.Equal(t, 5, len(splitNonEmpty(out)))
	assert.Contains(t, out, "   10 | ")
	assert.Contains(t, out, "   14 | ")
	assert.NotContains(t, out, "   15 | ")
}

func TestSnippetRenderer_MissingFileFailsLocally(t *testing.T) {
	r, err := NewSnippetRenderer(t.TempDir(), 40)
	require.NoError(t, err)

	_, err = r.Render(index.Chunk{Path: "gone.md", StartLine: 1, EndLine: 2})
	assert.Error(t, err)
}

func TestSnippetRenderer_CachesFileReads(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.md")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o644))

	r, err := NewSnippetRenderer(tmpDir, 40)
	require.NoError(t, err)

	first, err := r.Render(index.Chunk{Path: "file.md", StartLine: 1, EndLine: 1})
	require.NoError(t, err)

	// Rewrite on disk; the cached content still serves
	require.NoError(t, os.WriteFile(path, []byte("changed\n"), 0o644))
	second, err := r.Render(index.Chunk{Path: "file.md", StartLine: 1, EndLine: 1})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
