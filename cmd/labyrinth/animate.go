package main

import (
	"github.com/aretw0/labyrinth/internal/cli"
	"github.com/spf13/cobra"
)

var animateCmd = &cobra.Command{
	Use:   "animate [maze|level]",
	Short: "Watch the search explore the maze, then walk the solution",
	Long: `Animates the search one expansion per frame: explored cells in red, the cells
just added to the frontier in green. When the goal is found the player walks the
path. When stdout is not a terminal only the final frame is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		strategy, _ := cmd.Flags().GetString("strategy")
		headless, _ := cmd.Flags().GetBool("headless")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		_, err = app.Animate(sigCtx, cli.AnimateOptions{
			Maze:     mazeArg(args),
			Strategy: strategy,
			Headless: headless,
			Output:   cmd.OutOrStdout(),
		})
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(animateCmd)
	animateCmd.Flags().StringP("strategy", "s", "", "Search strategy: dfs, bfs, greedy or astar (default from config)")
	animateCmd.Flags().Bool("headless", false, "Print only the final frame")
}
