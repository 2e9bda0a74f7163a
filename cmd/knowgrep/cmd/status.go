package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/knowgrep/knowgrep/internal/config"
	"github.com/knowgrep/knowgrep/internal/index"
	"github.com/knowgrep/knowgrep/internal/output"
)

func newStatusCmd() *cobra.Command {
	var rootFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show index status for the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, rootFlag)
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Project root (default: auto-detected)")

	return cmd
}

func runStatus(cmd *cobra.Command, rootFlag string) error {
	out := output.New(cmd.OutOrStdout())

	root, err := resolveRoot(rootFlag)
	if err != nil {
		return err
	}
	out.Statusf("📁", "Project root: %s", root)

	configPath := filepath.Join(root, config.ProjectConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		out.Statusf("", "Config: %s", configPath)
	} else {
		out.Status("", "Config: defaults (no "+config.ProjectConfigFile+")")
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	indexPath := cfg.Output
	if indexPath == "" {
		indexPath = config.DefaultIndexPath
	}
	if !filepath.IsAbs(indexPath) {
		indexPath = filepath.Join(root, indexPath)
	}
	idx, err := index.Load(indexPath)
	if err != nil {
		out.Warning("No usable index at " + indexPath)
		out.Status("", "Run 'knowgrep index' to build one")
		return nil
	}

	files := make(map[string]struct{})
	for _, item := range idx.Items {
		files[item.Path] = struct{}{}
	}

	out.Successf("Index: %s", indexPath)
	out.Statusf("", "Generated: %s", idx.GeneratedAt.Local().Format("2006-01-02 15:04:05"))
	out.Statusf("", "Chunks: %d across %d files", len(idx.Items), len(files))
	out.Statusf("", "Schema version: %d", idx.Version)
	return nil
}
