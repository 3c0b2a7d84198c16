package main

import (
	"fmt"
	"os"

	"github.com/aretw0/labyrinth/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "labyrinth",
	Short: "Labyrinth solves grid mazes with classic search strategies",
	Long: `Labyrinth loads text mazes and searches them with depth-first, breadth-first,
greedy best-first or A* search. Watch the search animate, walk the maze yourself,
or serve it over HTTP and MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the maze files (default from config: mazes)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default labyrinth.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or off")
}

// newApp builds the app from the persistent flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	return cli.NewApp(cli.Options{
		ConfigPath: configPath,
		MazeDir:    dir,
		LogLevel:   logLevel,
	})
}

// mazeArg returns the optional maze or level argument.
func mazeArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
