package main

import (
	"fmt"

	"github.com/aretw0/labyrinth/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [maze|level...]",
	Short: "Check maze files for consistency",
	Long: `Parses every maze (or the given ones) and crawls it from the start.
Mazes without exactly one start and one goal fail; an unreachable goal or
sealed-off open cells are reported as warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		names := make([]string, len(args))
		for i, a := range args {
			names[i] = app.Config.ResolveMaze(a)
		}

		reports, err := validator.ValidateAll(app.Loader, names...)
		if err != nil {
			return err
		}
		if len(reports) == 0 {
			return fmt.Errorf("no mazes found in %s", app.Config.MazeDir)
		}

		failed := 0
		for _, r := range reports {
			mark := "✓"
			if !r.OK() {
				mark = "✗"
				failed++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, r.Maze)
			for _, issue := range r.Issues {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s: %s\n", issue.Severity, issue.Message)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d mazes are invalid", failed, len(reports))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All mazes are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
