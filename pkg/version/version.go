// Package version holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/spencer-p/sunelevation/pkg/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	Commit    = "none"
	BuildTime = "unknown"
)

// Short returns the semantic version.
func Short() string {
	return Version
}

// Full returns the version with commit and build time.
func Full() string {
	return fmt.Sprintf("sunelevation %s (commit %s, built %s)", Version, Commit, BuildTime)
}

// Command prints Full.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Full())
		},
	}
}
