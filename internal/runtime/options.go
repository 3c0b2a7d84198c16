package runtime

import (
	"log/slog"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// Option configures a Search.
type Option func(*Search)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Search) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Search) {
		s.hooks = hooks
	}
}

// WithStrategy labels the run for events and snapshots.
// The ordering itself comes from the frontier passed to Start or Solve.
func WithStrategy(strategy domain.Strategy) Option {
	return func(s *Search) {
		s.strategy = strategy
	}
}
