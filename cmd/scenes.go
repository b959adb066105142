package cmd

import (
	"fmt"
	"log"
	"text/tabwriter"

	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/spf13/cobra"
)

func newScenesCmd() *cobra.Command {
	var dir string

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "List available scenes",
		Long:  "List the built-in scenes and any YAML/TOML scene files in the scenes directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := scene.ListAllScenes(dir, log.New(cmd.ErrOrStderr(), "", 0))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
			for _, s := range scenes {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.DisplayName, s.Description)
			}
			return tw.Flush()
		},
	}

	scenesCmd.Flags().StringVar(&dir, "dir", "scenes", "Directory to search for scene files")
	return scenesCmd
}
