package main

import (
	"github.com/aretw0/labyrinth/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [maze|level]",
	Short: "Walk the maze yourself with the arrow keys",
	Long: `Starts an interactive game. Arrows or WASD move the player, blocked moves are
ignored. Press 'p' to reveal the path found by the selected strategy, 'r' to go
back to the start and 'q' or Esc to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		strategy, _ := cmd.Flags().GetString("strategy")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		_, err = app.Play(sigCtx, cli.PlayOptions{
			Maze:     mazeArg(args),
			Strategy: strategy,
		})
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("strategy", "s", "", "Strategy used by the path hint (default from config)")
}
