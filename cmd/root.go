package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags during build
var Version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pathtracer",
		Short: "A small Monte Carlo path tracer",
		Long: `pathtracer renders spheres, planes and quads made of diffuse, metal and
glass materials under a sky gradient. Scenes are built in or loaded from
YAML/TOML files, and renders are written as PPM, PNG or BMP.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRenderCmd(), newScenesCmd(), newServeCmd())
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
