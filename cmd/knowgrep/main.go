// Package main provides the entry point for the knowgrep CLI.
package main

import (
	"os"

	"github.com/knowgrep/knowgrep/cmd/knowgrep/cmd"
	"github.com/knowgrep/knowgrep/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// A missing index gets its own exit status so callers can
		// distinguish "run index first" from real failures.
		if errors.CodeOf(err) == errors.ErrCodeIndexNotFound {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
