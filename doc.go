/*
Package labyrinth solves grid mazes with interchangeable graph-search strategies and
animates a player walking the path it finds.

A maze is plain text: one row per line, ' ' for floor, 'A' for the start, 'B' for the
goal and any other character for a wall. The engine parses it, expands nodes from
the start in the order the chosen frontier dictates and reconstructs the path from
the goal back to the start.

# Strategies

  - dfs: depth-first, a stack frontier.
  - bfs: breadth-first, a queue frontier. Finds a shortest path.
  - greedy: always expands the node with the smallest Manhattan distance to the goal.
  - astar: expands the node with the smallest path cost plus Manhattan distance.

# Hexagonal Architecture

The search core lives in pkg/domain, pkg/frontier and internal/runtime and does no
I/O. Mazes arrive through a ports.MazeLoader and sessions persist through a
ports.SessionStore, so the same engine backs the CLI, the HTTP API and the MCP server.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/labyrinth"
		"github.com/aretw0/labyrinth/pkg/adapters/file"
	)

	func main() {
		eng := labyrinth.New(file.NewLoader("./mazes"))

		ctx := context.Background()
		if err := eng.Load(ctx, "easy"); err != nil {
			log.Fatal(err)
		}

		found, err := eng.Solve(ctx, "astar")
		if err != nil {
			log.Fatal(err)
		}
		if !found {
			fmt.Println("No solution.")
			return
		}
		fmt.Println(eng.Maze().Solution.Actions)
	}

A search can also be advanced one node at a time with Start and Step, which is how
the animation in Runner works.
*/
package labyrinth
