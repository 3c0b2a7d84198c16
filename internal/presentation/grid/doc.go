// Package grid draws maze snapshots as text frames.
package grid
