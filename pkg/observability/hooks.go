package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// LoggingHooks logs every lifecycle event. Node expansions log at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSearchStart: func(ctx context.Context, e *domain.SearchEvent) {
			logger.InfoContext(ctx, "search_start", "maze", e.Maze, "strategy", e.Strategy)
		},
		OnNodeExpand: func(ctx context.Context, e *domain.ExpandEvent) {
			logger.DebugContext(ctx, "node_expand",
				"maze", e.Maze,
				"state", e.State,
				"added", e.Added,
				"frontier", e.Frontier,
			)
		},
		OnSolved: func(ctx context.Context, e *domain.SearchEvent) {
			logger.InfoContext(ctx, "search_solved",
				"maze", e.Maze,
				"strategy", e.Strategy,
				"num_explored", e.NumExplored,
				"path_length", e.PathLength,
			)
		},
		OnExhausted: func(ctx context.Context, e *domain.SearchEvent) {
			logger.InfoContext(ctx, "search_exhausted",
				"maze", e.Maze,
				"strategy", e.Strategy,
				"num_explored", e.NumExplored,
			)
		},
	}
}

// Combine merges several sets of hooks into one that calls each in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var (
		starts    []func(context.Context, *domain.SearchEvent)
		expands   []func(context.Context, *domain.ExpandEvent)
		solved    []func(context.Context, *domain.SearchEvent)
		exhausted []func(context.Context, *domain.SearchEvent)
	)
	for _, h := range sets {
		if h.OnSearchStart != nil {
			starts = append(starts, h.OnSearchStart)
		}
		if h.OnNodeExpand != nil {
			expands = append(expands, h.OnNodeExpand)
		}
		if h.OnSolved != nil {
			solved = append(solved, h.OnSolved)
		}
		if h.OnExhausted != nil {
			exhausted = append(exhausted, h.OnExhausted)
		}
	}

	var out domain.LifecycleHooks
	if len(starts) > 0 {
		out.OnSearchStart = fanOut(starts)
	}
	if len(expands) > 0 {
		out.OnNodeExpand = fanOut(expands)
	}
	if len(solved) > 0 {
		out.OnSolved = fanOut(solved)
	}
	if len(exhausted) > 0 {
		out.OnExhausted = fanOut(exhausted)
	}
	return out
}

func fanOut[E any](fns []func(context.Context, E)) func(context.Context, E) {
	return func(ctx context.Context, e E) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}
