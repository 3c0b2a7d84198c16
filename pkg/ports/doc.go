/*
Package ports defines the driven ports (interfaces) for the Labyrinth engine.

These interfaces decouple the search core from its ordering policies and from
external implementations, allowing the engine to work with various maze sources
and session storage backends.

# Key Interfaces

  - Frontier: The ordering policy of a search (stack, queue, greedy, A*).
  - MazeLoader: Responsible for loading maze text (e.g., from a directory or Memory).
  - SessionStore: Responsible for persisting and loading search Sessions.
  - DistributedLocker: Provides distributed locking for concurrent session access.
*/
package ports
