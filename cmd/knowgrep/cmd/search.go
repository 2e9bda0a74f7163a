package cmd

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/knowgrep/knowgrep/internal/config"
	"github.com/knowgrep/knowgrep/internal/index"
	"github.com/knowgrep/knowgrep/internal/output"
	"github.com/knowgrep/knowgrep/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	root         string
	indexPath    string
	limit        int
	snippets     bool
	snippetLines int
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Query the index",
		Long: `Rank indexed chunks against a free-text query and print the best
matches. A query with no usable terms or no matching chunks returns
zero results, which is still success.

Examples:
  knowgrep search "configuration loading"
  knowgrep search "error handling" -n 5
  knowgrep search "usage" --snippets`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "", "Project root (default: auto-detected)")
	cmd.Flags().StringVar(&opts.indexPath, "index", "", "Index path (default: <root>/"+config.DefaultIndexPath+")")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", search.DefaultLimit, "Maximum number of results")
	cmd.Flags().BoolVar(&opts.snippets, "snippets", false, "Render a line-numbered excerpt for each result")
	cmd.Flags().IntVar(&opts.snippetLines, "snippet-lines", search.DefaultSnippetLines, "Maximum lines per snippet")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	out := output.New(cmd.OutOrStdout())

	root, err := resolveRoot(opts.root)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	limit := opts.limit
	if !cmd.Flags().Changed("limit") && cfg.Limits.MaxResults > 0 {
		limit = cfg.Limits.MaxResults
	}
	snippetLines := opts.snippetLines
	if !cmd.Flags().Changed("snippet-lines") && cfg.Limits.SnippetLines > 0 {
		snippetLines = cfg.Limits.SnippetLines
	}

	indexPath := opts.indexPath
	if indexPath == "" {
		if cfg.Output != "" {
			indexPath = cfg.Output
		} else {
			indexPath = config.DefaultIndexPath
		}
		if !filepath.IsAbs(indexPath) {
			indexPath = filepath.Join(root, indexPath)
		}
	}

	slog.Info("search_started", "query", query, "limit", limit, "index", indexPath)

	idx, err := index.Load(indexPath)
	if err != nil {
		return err
	}

	results := search.NewEngine(idx).
		WithQueryCap(cfg.Limits.QueryTokens).
		Search(query, limit)
	slog.Info("search_complete", "results", len(results))

	if len(results) == 0 {
		out.Statusf("", "No results for %q", query)
		return nil
	}

	var renderer *search.SnippetRenderer
	if opts.snippets {
		renderer, err = search.NewSnippetRenderer(root, snippetLines)
		if err != nil {
			return err
		}
	}

	for i, r := range results {
		out.Linef("%d. %.2f %q %s", i+1, r.Score, r.Chunk.ID, r.Chunk.Title)
		if r.Chunk.Summary != "" {
			out.Linef("   %s", r.Chunk.Summary)
		}
		if renderer != nil {
			snippet, err := renderer.Render(r.Chunk)
			if err != nil {
				// One unreadable source never fails the whole query.
				slog.Warn("snippet render failed", "chunk", r.Chunk.ID, "error", err)
				out.Linef("   (snippet unavailable: %v)", err)
			} else {
				out.Line(strings.TrimRight(snippet, "\n"))
			}
		}
		out.Newline()
	}
	return nil
}
