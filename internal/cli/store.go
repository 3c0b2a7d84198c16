package cli

import (
	"fmt"

	"github.com/aretw0/labyrinth/internal/config"
	"github.com/aretw0/labyrinth/pkg/adapters/file"
	"github.com/aretw0/labyrinth/pkg/adapters/memory"
	"github.com/aretw0/labyrinth/pkg/adapters/redis"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/observability"
	"github.com/aretw0/labyrinth/pkg/persistence/middleware"
	"github.com/aretw0/labyrinth/pkg/ports"
	"github.com/aretw0/labyrinth/pkg/session"
)

// OpenStore builds the configured session store.
// The locker is nil unless the backend supports distributed locks.
// The returned close function releases backend connections.
func (a *App) OpenStore() (ports.SessionStore, ports.DistributedLocker, func() error, error) {
	noop := func() error { return nil }
	switch a.Config.Store.Kind {
	case config.StoreMemory:
		return memory.NewStore(), nil, noop, nil
	case config.StoreFile:
		return file.NewStore(a.Config.Store.Path), nil, noop, nil
	case config.StoreRedis:
		rc := a.Config.Redis
		store := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithTTL(rc.TTL), redis.WithPrefix(rc.Prefix))
		locker := redis.NewLocker(store.Client(), store.Prefix())
		return store, locker, store.Close, nil
	default:
		return nil, nil, noop, fmt.Errorf("unknown store kind %q", a.Config.Store.Kind)
	}
}

// OpenSessions builds a session manager on the configured store.
// Store calls are logged, and observed by metrics when it is not nil.
func (a *App) OpenSessions(metrics *observability.Metrics, hooks domain.LifecycleHooks) (*session.Manager, func() error, error) {
	store, locker, closeFn, err := a.OpenStore()
	if err != nil {
		return nil, nil, err
	}

	mws := []middleware.Middleware{middleware.NewLoggingMiddleware(a.Logger)}
	if metrics != nil {
		mws = append(mws, middleware.NewObserverMiddleware(metrics.ObserveStore))
	}

	opts := []session.Option{
		session.WithLogger(a.Logger),
		session.WithLifecycleHooks(hooks),
	}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}

	return session.NewManager(middleware.Chain(store, mws...), a.Loader, opts...), closeFn, nil
}
