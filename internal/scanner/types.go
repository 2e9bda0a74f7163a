// Package scanner discovers indexable files under a project root.
// It enumerates the configured include roots, applies the extension
// allow-list and exclusion rules, and returns paths in a stable order.
package scanner

// File is a discovered candidate file.
type File struct {
	// Path is relative to the project root, using forward slashes.
	Path string

	// AbsPath is the absolute path on disk.
	AbsPath string

	// Size is the file size in bytes.
	Size int64
}

// DefaultMaxFileSize is the largest file the scanner will return (10MB).
// Larger files are skipped; they are almost never hand-written text.
const DefaultMaxFileSize = 10 * 1024 * 1024
