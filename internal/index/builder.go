package index

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/knowgrep/knowgrep/internal/chunk"
	"github.com/knowgrep/knowgrep/internal/config"
	"github.com/knowgrep/knowgrep/internal/scanner"
	"github.com/knowgrep/knowgrep/internal/token"
)

const truncationMarker = "..."

// Builder assembles an Index from the files under a root directory.
type Builder struct {
	root   string
	opts   *config.Options
	logger *slog.Logger

	// Progress, when set, is called after each file is processed.
	Progress func(done, total int, path string)
}

// BuildStats summarizes what a build saw and produced.
type BuildStats struct {
	FilesScanned int
	FilesSkipped int
	Chunks       int
}

// NewBuilder creates a builder for root with resolved options.
func NewBuilder(root string, opts *config.Options, logger *slog.Logger) *Builder {
	if opts == nil {
		opts = config.NewOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{root: root, opts: opts, logger: logger}
}

// Build scans, chunks, and tokenizes every selected file and returns
// the assembled Index. Unreadable or binary files are skipped; only
// selection itself can fail the build.
func (b *Builder) Build() (*Index, *BuildStats, error) {
	files, err := scanner.Select(b.root, b.opts)
	if err != nil {
		return nil, nil, err
	}

	stats := &BuildStats{FilesScanned: len(files)}
	idx := &Index{
		Version:     SchemaVersion,
		GeneratedAt: time.Now().UTC(),
		Root:        b.root,
		Include: Include{
			Roots:      b.opts.Include.Roots,
			Extensions: b.opts.Include.Extensions,
		},
		Exclude: Exclude{
			Dirs:  b.opts.Exclude.Dirs,
			Globs: b.opts.Exclude.Globs,
		},
		Items: []Chunk{},
	}

	for i, file := range files {
		chunks, ok := b.chunkFile(file)
		if ok {
			idx.Items = append(idx.Items, chunks...)
		} else {
			stats.FilesSkipped++
		}
		if b.Progress != nil {
			b.Progress(i+1, len(files), file.Path)
		}
	}
	stats.Chunks = len(idx.Items)

	return idx, stats, nil
}

// chunkFile reads one file and emits its chunks. The second return is
// false when the file was skipped (unreadable or not text).
func (b *Builder) chunkFile(file scanner.File) ([]Chunk, bool) {
	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		b.logger.Debug("skipping unreadable file", "path", file.Path, "error", err)
		return nil, false
	}
	if !isText(content) {
		b.logger.Debug("skipping binary file", "path", file.Path)
		return nil, false
	}

	kind := chunk.Classify(file.Path)
	lines := strings.Split(string(content), "\n")
	// A trailing newline is a line terminator, not an extra line.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	spans := chunk.Split(lines, kind, b.opts.Limits.WindowLines)

	var chunks []Chunk
	for _, span := range spans {
		body := strings.Join(lines[span.StartLine-1:span.EndLine], "\n")
		tokens := token.Extract(body, b.opts.Limits.ChunkTokens)
		if len(tokens) == 0 {
			continue
		}

		title := span.Title
		if title == "" {
			title = filepath.Base(file.Path)
		}

		chunks = append(chunks, Chunk{
			ID:        ChunkID(file.Path, span.StartLine, span.EndLine),
			Path:      file.Path,
			Kind:      string(kind),
			Title:     title,
			StartLine: span.StartLine,
			EndLine:   span.EndLine,
			Tags:      []string{},
			Summary:   summarize(lines[span.StartLine-1:span.EndLine], b.opts.Limits.SummaryChars),
			Tokens:    tokens,
		})
	}
	return chunks, true
}

// isText reports whether content decodes as text. A NUL byte near the
// start or invalid UTF-8 marks the file as binary.
func isText(content []byte) bool {
	probe := content
	if len(probe) > 512 {
		probe = probe[:512]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return false
	}
	return utf8.Valid(content)
}

// summarize returns the first non-blank line of a span, truncated to
// maxChars with a marker.
func summarize(lines []string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = 160
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if runes := []rune(trimmed); len(runes) > maxChars {
			keep := maxChars - len(truncationMarker)
			if keep < 0 {
				keep = 0
			}
			return string(runes[:keep]) + truncationMarker
		}
		return trimmed
	}
	return ""
}
