package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// Observer receives the outcome of every store operation.
// observability.Metrics.ObserveStore satisfies it.
type Observer func(op string, d time.Duration, err error)

type observedStore struct {
	next    ports.SessionStore
	observe Observer
}

// NewObserverMiddleware reports the duration and result of each operation to observe.
func NewObserverMiddleware(observe Observer) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &observedStore{next: next, observe: observe}
	}
}

// NewLoggingMiddleware logs failed operations at warn level and all others at debug.
// A missing session is an expected outcome and logs at debug.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return NewObserverMiddleware(func(op string, d time.Duration, err error) {
		switch {
		case err == nil, errors.Is(err, domain.ErrSessionNotFound):
			logger.Debug("session store", "op", op, "duration", d, "err", err)
		default:
			logger.Warn("session store failed", "op", op, "duration", d, "err", err)
		}
	})
}

func (s *observedStore) Save(ctx context.Context, session *domain.Session) error {
	start := time.Now()
	err := s.next.Save(ctx, session)
	s.observe("save", time.Since(start), err)
	return err
}

func (s *observedStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	start := time.Now()
	session, err := s.next.Load(ctx, sessionID)
	s.observe("load", time.Since(start), err)
	return session, err
}

func (s *observedStore) Delete(ctx context.Context, sessionID string) error {
	start := time.Now()
	err := s.next.Delete(ctx, sessionID)
	s.observe("delete", time.Since(start), err)
	return err
}

func (s *observedStore) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := s.next.List(ctx)
	s.observe("list", time.Since(start), err)
	return ids, err
}
