package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/spencer-p/sunelevation/pkg/version"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sunelevation",
		Short: "Apparent sun elevation for an observer on the Earth",
		Long: `sunelevation computes the apparent elevation of the sun, corrected for
atmospheric refraction at the observer's altitude, and the highest elevation
reached during a window of time.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCommand(),
		newMaxCommand(),
		newElevationCommand(),
		version.Command(),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
