package cmd

import (
	"github.com/spf13/cobra"

	"github.com/knowgrep/knowgrep/internal/output"
	"github.com/knowgrep/knowgrep/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := output.New(cmd.OutOrStdout())
			if short {
				out.Line(version.Short())
				return
			}
			info := version.GetInfo()
			out.Linef("knowgrep %s", info.Version)
			out.Linef("  commit:  %s", info.Commit)
			out.Linef("  built:   %s", info.Date)
			out.Linef("  go:      %s", info.GoVersion)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
