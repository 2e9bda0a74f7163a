// Package config defines the resolved build and query options for knowgrep.
//
// Options are always an explicit value threaded through every call. Defaults
// are merged with the optional project file (.knowgrep.yaml) and caller-set
// values at load time; nothing reads ambient process state afterwards.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultIndexPath is the default index artifact location, relative to the
// project root.
const DefaultIndexPath = ".knowgrep/index.json"

// ProjectConfigFile is the per-project configuration file name.
const ProjectConfigFile = ".knowgrep.yaml"

// Options is the complete resolved configuration for a build or query.
type Options struct {
	Version int           `yaml:"version" json:"version"`
	Output  string        `yaml:"output" json:"output"`
	Include IncludeConfig `yaml:"include" json:"include"`
	Exclude ExcludeConfig `yaml:"exclude" json:"exclude"`
	Limits  LimitsConfig  `yaml:"limits" json:"limits"`
}

// IncludeConfig configures which files are considered for indexing.
type IncludeConfig struct {
	// Roots are paths relative to the project root to scan.
	// Empty means the whole tree.
	Roots []string `yaml:"roots" json:"roots"`

	// Extensions is the file extension allow-list (with leading dot).
	Extensions []string `yaml:"extensions" json:"extensions"`
}

// ExcludeConfig configures exclusion rules applied during scanning.
type ExcludeConfig struct {
	// Dirs are directory names excluded wherever they appear in a path.
	Dirs []string `yaml:"dirs" json:"dirs"`

	// Globs are filepath.Match patterns tested against the relative path
	// and the base name.
	Globs []string `yaml:"globs" json:"globs"`
}

// LimitsConfig bounds chunking, tokenization and output sizes.
type LimitsConfig struct {
	// ChunkTokens caps unique terms extracted per chunk at build time.
	ChunkTokens int `yaml:"chunk_tokens" json:"chunk_tokens"`

	// QueryTokens caps unique terms extracted from a query.
	QueryTokens int `yaml:"query_tokens" json:"query_tokens"`

	// WindowLines is the fixed chunk window for non-heading files.
	WindowLines int `yaml:"window_lines" json:"window_lines"`

	// SummaryChars is the character budget for chunk summaries.
	SummaryChars int `yaml:"summary_chars" json:"summary_chars"`

	// MaxResults is the default number of query results returned.
	MaxResults int `yaml:"max_results" json:"max_results"`

	// SnippetLines caps rendered snippet length.
	SnippetLines int `yaml:"snippet_lines" json:"snippet_lines"`
}

// defaultExtensions is the built-in extension allow-list.
var defaultExtensions = []string{
	// Documentation
	".md", ".markdown", ".mdx", ".rst", ".txt",
	// Configuration
	".json", ".yaml", ".yml", ".toml", ".ini",
	// Scripts
	".sh", ".bash", ".zsh",
	// Code
	".go", ".py", ".js", ".ts", ".rb", ".rs", ".java", ".c", ".h", ".cpp",
}

// defaultExcludeDirs are directory names always skipped.
var defaultExcludeDirs = []string{
	".git",
	".knowgrep",
	"node_modules",
	"vendor",
	"__pycache__",
	"dist",
	"build",
}

// NewOptions creates Options with built-in defaults.
func NewOptions() *Options {
	return &Options{
		Version: 1,
		Output:  DefaultIndexPath,
		Include: IncludeConfig{
			Roots:      []string{},
			Extensions: append([]string{}, defaultExtensions...),
		},
		Exclude: ExcludeConfig{
			Dirs:  append([]string{}, defaultExcludeDirs...),
			Globs: []string{},
		},
		Limits: LimitsConfig{
			ChunkTokens:  128,
			QueryTokens:  16,
			WindowLines:  200,
			SummaryChars: 160,
			MaxResults:   10,
			SnippetLines: 40,
		},
	}
}

// Load loads options for the given project directory.
// It applies configuration in order of increasing precedence:
//  1. Built-in defaults
//  2. Project config (.knowgrep.yaml or .knowgrep.yml in dir)
//
// Caller-supplied values (CLI flags) are merged afterwards via Merge*.
func Load(dir string) (*Options, error) {
	opts := NewOptions()

	if err := opts.loadFromFile(dir); err != nil {
		return nil, err
	}

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return opts, nil
}

// loadFromFile attempts to load configuration from .knowgrep.yaml or .knowgrep.yml.
func (o *Options) loadFromFile(dir string) error {
	yamlPath := filepath.Join(dir, ProjectConfigFile)
	if fileExists(yamlPath) {
		return o.loadYAML(yamlPath)
	}

	ymlPath := filepath.Join(dir, ".knowgrep.yml")
	if fileExists(ymlPath) {
		return o.loadYAML(ymlPath)
	}

	// No config file is fine - use defaults
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (o *Options) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Options
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	o.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into o.
// Extension and exclusion sets union with the defaults rather than replace
// them, so a project file can only widen the rules.
func (o *Options) mergeWith(other *Options) {
	if other.Version != 0 {
		o.Version = other.Version
	}
	if other.Output != "" {
		o.Output = other.Output
	}

	if len(other.Include.Roots) > 0 {
		o.Include.Roots = other.Include.Roots
	}
	o.Include.Extensions = unionLower(o.Include.Extensions, other.Include.Extensions)
	o.Exclude.Dirs = union(o.Exclude.Dirs, other.Exclude.Dirs)
	o.Exclude.Globs = union(o.Exclude.Globs, other.Exclude.Globs)

	if other.Limits.ChunkTokens != 0 {
		o.Limits.ChunkTokens = other.Limits.ChunkTokens
	}
	if other.Limits.QueryTokens != 0 {
		o.Limits.QueryTokens = other.Limits.QueryTokens
	}
	if other.Limits.WindowLines != 0 {
		o.Limits.WindowLines = other.Limits.WindowLines
	}
	if other.Limits.SummaryChars != 0 {
		o.Limits.SummaryChars = other.Limits.SummaryChars
	}
	if other.Limits.MaxResults != 0 {
		o.Limits.MaxResults = other.Limits.MaxResults
	}
	if other.Limits.SnippetLines != 0 {
		o.Limits.SnippetLines = other.Limits.SnippetLines
	}
}

// MergeRoots adds caller-supplied include roots.
func (o *Options) MergeRoots(roots []string) {
	if len(roots) > 0 {
		o.Include.Roots = union(o.Include.Roots, roots)
	}
}

// MergeExtensions adds caller-supplied extensions to the allow-list.
// Extensions are normalized to lowercase with a leading dot.
func (o *Options) MergeExtensions(exts []string) {
	normalized := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		normalized = append(normalized, e)
	}
	o.Include.Extensions = unionLower(o.Include.Extensions, normalized)
}

// MergeExcludes adds caller-supplied exclusion rules.
func (o *Options) MergeExcludes(dirs, globs []string) {
	o.Exclude.Dirs = union(o.Exclude.Dirs, dirs)
	o.Exclude.Globs = union(o.Exclude.Globs, globs)
}

// AllowsExtension reports whether a path's extension is in the allow-list.
func (o *Options) AllowsExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, allowed := range o.Include.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Validate validates the options and returns an error if invalid.
func (o *Options) Validate() error {
	if o.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if o.Limits.ChunkTokens <= 0 {
		return fmt.Errorf("chunk_tokens must be positive, got %d", o.Limits.ChunkTokens)
	}
	if o.Limits.QueryTokens <= 0 {
		return fmt.Errorf("query_tokens must be positive, got %d", o.Limits.QueryTokens)
	}
	if o.Limits.WindowLines <= 0 {
		return fmt.Errorf("window_lines must be positive, got %d", o.Limits.WindowLines)
	}
	if o.Limits.SummaryChars <= 0 {
		return fmt.Errorf("summary_chars must be positive, got %d", o.Limits.SummaryChars)
	}
	if o.Limits.MaxResults < 0 {
		return fmt.Errorf("max_results must be non-negative, got %d", o.Limits.MaxResults)
	}
	if o.Limits.SnippetLines <= 0 {
		return fmt.Errorf("snippet_lines must be positive, got %d", o.Limits.SnippetLines)
	}
	for _, ext := range o.Include.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension must start with a dot, got %q", ext)
		}
	}
	return nil
}

// FindProjectRoot finds the project root directory.
// It looks for a .git directory or a .knowgrep.yaml/.yml file by walking up
// the directory tree; if neither is found it returns the starting directory.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absDir
	for {
		if dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}

		if fileExists(filepath.Join(currentDir, ".knowgrep.yaml")) ||
			fileExists(filepath.Join(currentDir, ".knowgrep.yml")) {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return absDir, nil
		}
		currentDir = parentDir
	}
}

// union appends items from extra not already present in base.
func union(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, b := range base {
		seen[b] = struct{}{}
	}
	for _, e := range extra {
		if _, ok := seen[e]; !ok {
			base = append(base, e)
			seen[e] = struct{}{}
		}
	}
	return base
}

// unionLower is union with case-insensitive comparison.
func unionLower(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, b := range base {
		seen[strings.ToLower(b)] = struct{}{}
	}
	for _, e := range extra {
		key := strings.ToLower(e)
		if _, ok := seen[key]; !ok {
			base = append(base, key)
			seen[key] = struct{}{}
		}
	}
	return base
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// dirExists checks if a directory exists.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
