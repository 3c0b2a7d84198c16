/*
Package observability provides tools for monitoring the Labyrinth engine.

It turns search lifecycle events into Prometheus metrics and structured log records,
and combines several sets of lifecycle hooks into one so the engine takes a single
value.
*/
package observability
