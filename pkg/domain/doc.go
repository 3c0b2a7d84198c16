/*
Package domain contains the core domain models of the Labyrinth search engine.

It defines the maze grid, the search node arena and the read-only snapshots the
presentation layers poll. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Maze: A parsed grid of walls and floor cells with one start and one goal.
  - Cell: A (row, col) coordinate. Comparable, so it works as a map key.
  - Action: One of the four axis-aligned moves (up, down, left, right).
  - Node / Tree: Immutable search records chained by parent handles in an arena.
  - Snapshot: A copy of the search progress for renderers and adapters.
  - Session: The persisted, replayable record of a search run.
*/
package domain
