package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of labyrinth",
	Run: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(cmd.OutOrStdout(), labyrinth.Version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "labyrinth version %s\n", strings.TrimSpace(labyrinth.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the banner")
}
