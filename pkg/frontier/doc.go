// Package frontier implements the four ordering policies of a maze search.
//
//   - Stack: last in, first out (depth-first search).
//   - Queue: first in, first out (breadth-first search).
//   - Greedy: smallest Manhattan distance to the goal first.
//   - AStar: smallest path cost plus Manhattan distance first.
//
// Every implementation satisfies ports.Frontier. Priority frontiers break ties
// by insertion order, so a search is fully deterministic for a given maze.
package frontier
