package main

import (
	"fmt"
	"os"

	"github.com/aretw0/labyrinth/internal/presentation/tui"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the difficulty levels and their mazes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		rows := make([][3]string, 0, len(app.Config.Levels))
		for _, l := range app.Config.Levels {
			size := "missing"
			if data, err := app.Loader.GetMaze(l.Maze); err == nil {
				if m, err := domain.ParseMaze(string(data)); err == nil {
					size = fmt.Sprintf("%dx%d", m.Height, m.Width)
				} else {
					size = "invalid"
				}
			}
			rows = append(rows, [3]string{l.Name, l.Maze, size})
		}

		md := tui.LevelsTable(rows)
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if out, err := tui.NewRenderer(0)(md); err == nil {
				md = out
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(levelsCmd)
}
