package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/knowgrep/knowgrep/internal/config"
	"github.com/knowgrep/knowgrep/internal/index"
	"github.com/knowgrep/knowgrep/internal/output"
)

// indexOptions holds CLI flags for index.
type indexOptions struct {
	root         string
	outputPath   string
	includeRoots []string
	excludeDirs  []string
	excludeGlobs []string
	extensions   []string
}

func newIndexCmd() *cobra.Command {
	var opts indexOptions

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the search index",
		Long: `Scan the tree, chunk every selected text file, and write the
index artifact. Each run is a full rebuild that replaces any prior
index at the output path.

Examples:
  knowgrep index
  knowgrep index --include docs --include notes
  knowgrep index --ext .proto --exclude-dir tmp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "", "Project root to index (default: auto-detected)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Index output path (default: <root>/"+config.DefaultIndexPath+")")
	cmd.Flags().StringSliceVar(&opts.includeRoots, "include", nil, "Restrict scanning to these subdirectories (repeatable)")
	cmd.Flags().StringSliceVar(&opts.excludeDirs, "exclude-dir", nil, "Additional directory names to exclude (repeatable)")
	cmd.Flags().StringSliceVar(&opts.excludeGlobs, "exclude-glob", nil, "Additional glob patterns to exclude (repeatable)")
	cmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "Additional file extensions to include (repeatable)")

	return cmd
}

func runIndex(cmd *cobra.Command, opts indexOptions) error {
	out := output.New(cmd.OutOrStdout())

	root, err := resolveRoot(opts.root)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	cfg.MergeRoots(opts.includeRoots)
	cfg.MergeExtensions(opts.extensions)
	cfg.MergeExcludes(opts.excludeDirs, opts.excludeGlobs)

	outputPath := opts.outputPath
	if outputPath == "" {
		outputPath = cfg.Output
	}
	if outputPath == "" {
		outputPath = config.DefaultIndexPath
	}
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(root, outputPath)
	}

	slog.Info("index_started", "root", root, "output", outputPath)

	builder := index.NewBuilder(root, cfg, slog.Default())
	builder.Progress = func(done, total int, path string) {
		out.Progress(done, total, path)
	}

	idx, stats, err := builder.Build()
	if err != nil {
		return err
	}
	if err := index.Save(idx, outputPath); err != nil {
		return err
	}

	slog.Info("index_complete",
		"files", stats.FilesScanned,
		"skipped", stats.FilesSkipped,
		"chunks", stats.Chunks)

	out.Successf("Indexed %d chunks from %d files (%d skipped)",
		stats.Chunks, stats.FilesScanned, stats.FilesSkipped)
	out.Statusf("", "Index written to %s", outputPath)
	return nil
}

// resolveRoot picks the project root: an explicit flag wins, else the
// nearest ancestor carrying a project marker, else the working
// directory.
func resolveRoot(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	root, err := config.FindProjectRoot(".")
	if err != nil {
		return os.Getwd()
	}
	return root, nil
}
