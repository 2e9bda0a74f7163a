package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knowgrep/knowgrep/internal/config"
)

// Select enumerates every candidate file under the include roots.
//
// Files are kept when their extension is in the allow-list and no path
// component matches an excluded directory or glob. Include roots that do
// not exist are skipped without error. The result is sorted
// lexicographically by relative path so repeated builds over an unchanged
// tree see the same order.
func Select(root string, opts *config.Options) ([]File, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", absRoot)
	}

	roots := opts.Include.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var files []File
	seen := make(map[string]struct{})

	for _, includeRoot := range roots {
		start := filepath.Join(absRoot, filepath.FromSlash(includeRoot))
		if _, err := os.Stat(start); os.IsNotExist(err) {
			slog.Debug("include root missing, skipping", slog.String("root", includeRoot))
			continue
		}

		err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // Skip entries we can't access
			}

			relPath, err := filepath.Rel(absRoot, path)
			if err != nil {
				return nil
			}
			relPath = filepath.ToSlash(relPath)
			if relPath == "." {
				return nil
			}

			if d.IsDir() {
				if excludedDir(relPath, opts.Exclude.Dirs) {
					return filepath.SkipDir
				}
				return nil
			}

			// Symlinked files are not followed
			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}

			if !opts.AllowsExtension(relPath) {
				return nil
			}
			if excludedDir(relPath, opts.Exclude.Dirs) {
				return nil
			}
			if matchesGlob(relPath, opts.Exclude.Globs) {
				return nil
			}

			fi, err := d.Info()
			if err != nil {
				return nil
			}
			if fi.Size() > DefaultMaxFileSize {
				slog.Debug("file too large, skipping", slog.String("path", relPath))
				return nil
			}

			// Overlapping include roots must not emit duplicates
			if _, ok := seen[relPath]; ok {
				return nil
			}
			seen[relPath] = struct{}{}

			files = append(files, File{
				Path:    relPath,
				AbsPath: path,
				Size:    fi.Size(),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", includeRoot, err)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// excludedDir reports whether any component of relPath matches an excluded
// directory name.
func excludedDir(relPath string, dirs []string) bool {
	parts := strings.Split(relPath, "/")
	for _, part := range parts {
		for _, dir := range dirs {
			if part == dir {
				return true
			}
		}
	}
	return false
}

// matchesGlob reports whether relPath matches any exclusion glob.
// Patterns are tested against the full relative path and the base name, so
// "*.min.js" excludes minified files anywhere in the tree.
func matchesGlob(relPath string, globs []string) bool {
	base := filepath.Base(relPath)
	for _, pattern := range globs {
		if ok, err := filepath.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
