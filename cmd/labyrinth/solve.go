package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/labyrinth/internal/presentation/tui"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/observability"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type solveResult struct {
	Maze        string          `json:"maze"`
	Strategy    domain.Strategy `json:"strategy"`
	Found       bool            `json:"found"`
	Actions     []domain.Action `json:"actions"`
	NumExplored int             `json:"num_explored"`
	PathLength  int             `json:"path_length"`
}

var solveCmd = &cobra.Command{
	Use:   "solve [maze|level]",
	Short: "Search a maze and print the solution",
	Long: `Searches the maze (or the maze of a difficulty level) and prints the explored
state count and the path. With --all every strategy is compared.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		strategyName, _ := cmd.Flags().GetString("strategy")
		asJSON, _ := cmd.Flags().GetBool("json")
		all, _ := cmd.Flags().GetBool("all")

		strategies := domain.Strategies
		if !all {
			s, err := app.Strategy(strategyName)
			if err != nil {
				return err
			}
			strategies = []domain.Strategy{s}
		}

		render := tui.NewRenderer(0)
		var results []solveResult
		for _, strategy := range strategies {
			engine, err := app.LoadEngine(cmd.Context(), mazeArg(args), observability.LoggingHooks(app.Logger))
			if err != nil {
				return err
			}
			found, err := engine.Solve(cmd.Context(), strategy)
			if err != nil {
				return err
			}

			snap := engine.Snapshot()
			res := solveResult{
				Maze:        snap.Maze,
				Strategy:    strategy,
				Found:       found,
				Actions:     []domain.Action{},
				NumExplored: snap.NumExplored,
				PathLength:  snap.Solution.Len(),
			}
			if snap.Solution != nil {
				res.Actions = snap.Solution.Actions
			}
			results = append(results, res)

			if asJSON {
				continue
			}
			md := tui.Summary(snap)
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if out, err := render(md); err == nil {
					md = out
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if len(results) == 1 {
				return enc.Encode(results[0])
			}
			return enc.Encode(results)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("strategy", "s", "", "Search strategy: dfs, bfs, greedy or astar (default from config)")
	solveCmd.Flags().Bool("json", false, "Print the result as JSON")
	solveCmd.Flags().Bool("all", false, "Solve with every strategy")
}
