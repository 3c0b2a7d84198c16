/*
Package session implements session management and persistence orchestration.

A session records the maze, the strategy, the number of search steps taken and the
player moves made. The search is deterministic, so the Manager restores a session by
reloading the maze and replaying that record on a fresh engine. Concurrent requests
on one session are serialized with an in-process lock per session ID and, when
configured, a distributed lock shared by several replicas.
*/
package session
