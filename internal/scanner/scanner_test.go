package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowgrep/knowgrep/internal/config"
)

// writeTree creates files under root from a map of relative path -> content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
	}
}

func paths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestSelect_FiltersByExtension(t *testing.T) {
	// Given: a tree with allowed and disallowed extensions
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"README.md":  "# hi",
		"main.go":    "package main",
		"image.png":  "binary",
		"Makefile":   "all:",
		"notes.txt":  "notes",
		"san.tar.gz": "archive",
	})

	// When: selecting with defaults
	files, err := Select(tmpDir, config.NewOptions())
	require.NoError(t, err)

	// Then: only allow-listed extensions survive
	assert.Equal(t, []string{"README.md", "main.go", "notes.txt"}, paths(files))
}

func TestSelect_ExcludesDirectoryComponents(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"docs/guide.md":           "# guide",
		"node_modules/pkg/a.md":   "# dep docs",
		"vendor/lib/readme.md":    "# vendored",
		"src/.git/config.md":      "# not really docs",
		"deep/node_modules/b.txt": "b",
	})

	files, err := Select(tmpDir, config.NewOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/guide.md"}, paths(files))
}

func TestSelect_ExcludesGlobs(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"a.md":           "a",
		"a.generated.md": "generated",
		"sub/b.min.js":   "minified",
		"sub/b.js":       "plain",
	})

	opts := config.NewOptions()
	opts.MergeExcludes(nil, []string{"*.generated.md", "*.min.js"})

	files, err := Select(tmpDir, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md", "sub/b.js"}, paths(files))
}

func TestSelect_IncludeRootsRestrictScan(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"docs/a.md":  "a",
		"src/b.go":   "b",
		"other/c.md": "c",
	})

	opts := config.NewOptions()
	opts.MergeRoots([]string{"docs", "src"})

	files, err := Select(tmpDir, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.md", "src/b.go"}, paths(files))
}

func TestSelect_MissingIncludeRootSkippedWithoutError(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{"docs/a.md": "a"})

	opts := config.NewOptions()
	opts.MergeRoots([]string{"docs", "does-not-exist"})

	files, err := Select(tmpDir, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.md"}, paths(files))
}

func TestSelect_OverlappingRootsDeduplicate(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{"docs/sub/a.md": "a"})

	opts := config.NewOptions()
	opts.MergeRoots([]string{"docs", "docs/sub"})

	files, err := Select(tmpDir, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/sub/a.md"}, paths(files))
}

func TestSelect_OrderIsStableAndSorted(t *testing.T) {
	// Given: files created in non-lexicographic order
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"z.md":     "z",
		"a.md":     "a",
		"m/n.md":   "n",
		"b/c/d.md": "d",
	})

	// When: selecting twice
	first, err := Select(tmpDir, config.NewOptions())
	require.NoError(t, err)
	second, err := Select(tmpDir, config.NewOptions())
	require.NoError(t, err)

	// Then: both runs agree and are sorted
	assert.Equal(t, paths(first), paths(second))
	assert.True(t, sort.StringsAreSorted(paths(first)))
}

func TestSelect_RootMustExist(t *testing.T) {
	_, err := Select(filepath.Join(t.TempDir(), "nope"), config.NewOptions())
	require.Error(t, err)
}

func TestSelect_EmptyTreeReturnsNoFiles(t *testing.T) {
	files, err := Select(t.TempDir(), config.NewOptions())
	require.NoError(t, err)
	assert.Empty(t, files)
}
