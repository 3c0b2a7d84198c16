package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/logging"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed session lock is held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store  ports.SessionStore
	loader ports.MazeLoader

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	newID   func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLifecycleHooks registers hooks for the search work done by new steps.
// Replayed steps never fire them.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithIDGenerator replaces the UUID session IDs, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a new Session Manager over a store and a maze loader.
func NewManager(store ports.SessionStore, loader ports.MazeLoader, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		loader:  loader,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Create starts a new search session on the named maze.
// An empty strategy falls back to breadth-first.
func (m *Manager) Create(ctx context.Context, maze string, strategy domain.Strategy) (*domain.Session, domain.Snapshot, error) {
	if strategy == "" {
		strategy = domain.StrategyBFS
	}
	strategy, err := domain.ParseStrategy(string(strategy))
	if err != nil {
		return nil, domain.Snapshot{}, err
	}

	sess := domain.NewSession(m.newID(), maze, strategy)

	var snap domain.Snapshot
	live := true
	err = m.WithLock(ctx, sess.ID, func(ctx context.Context) error {
		eng, err := m.restore(ctx, sess, &live)
		if err != nil {
			return err
		}
		snap = m.record(sess, eng)
		return m.store.Save(ctx, sess)
	})
	if err != nil {
		return nil, domain.Snapshot{}, err
	}

	m.logger.Info("session created", "session_id", sess.ID, "maze", maze, "strategy", strategy)
	return sess, snap, nil
}

// Step advances the session's search by count nodes, stopping early when it ends.
// A count below one is treated as one.
func (m *Manager) Step(ctx context.Context, sessionID string, count int) (*domain.Session, domain.Snapshot, error) {
	if count < 1 {
		count = 1
	}
	return m.update(ctx, sessionID, func(eng *labyrinth.Engine, sess *domain.Session) error {
		for i := 0; i < count && !eng.Status().Terminal(); i++ {
			if _, err := eng.Step(); err != nil {
				return err
			}
		}
		return nil
	})
}

// Move moves the session's player. Blocked moves change nothing.
func (m *Manager) Move(ctx context.Context, sessionID string, action domain.Action) (*domain.Session, domain.Snapshot, error) {
	return m.update(ctx, sessionID, func(eng *labyrinth.Engine, sess *domain.Session) error {
		if eng.MovePlayer(action) {
			sess.Moves = append(sess.Moves, action)
		}
		return nil
	})
}

// Snapshot restores the session and returns its current view.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		eng, err := m.restore(ctx, sess, nil)
		if err != nil {
			return err
		}
		snap = eng.Snapshot()
		return nil
	})
	return snap, err
}

// update runs fn on the restored session under its lock and saves the result.
func (m *Manager) update(ctx context.Context, sessionID string, fn func(*labyrinth.Engine, *domain.Session) error) (*domain.Session, domain.Snapshot, error) {
	var (
		sess *domain.Session
		snap domain.Snapshot
	)
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}

		live := false
		eng, err := m.restore(ctx, sess, &live)
		if err != nil {
			return err
		}

		live = true
		if err := fn(eng, sess); err != nil {
			return err
		}

		snap = m.record(sess, eng)
		return m.store.Save(ctx, sess)
	})
	if err != nil {
		return nil, domain.Snapshot{}, err
	}
	m.logger.Debug("session updated", "session_id", sessionID, "steps", sess.Steps, "status", sess.Status)
	return sess, snap, nil
}

// Restore rebuilds the engine of a session by replaying its record.
func (m *Manager) Restore(ctx context.Context, sess *domain.Session) (*labyrinth.Engine, error) {
	return m.restore(ctx, sess, nil)
}

// restore replays sess on a fresh engine. Hooks fire only once *live is true;
// a nil live keeps them silent.
func (m *Manager) restore(ctx context.Context, sess *domain.Session, live *bool) (*labyrinth.Engine, error) {
	eng := labyrinth.New(m.loader, labyrinth.WithLifecycleHooks(gate(m.hooks, live)))
	if err := eng.Load(ctx, sess.Maze); err != nil {
		return nil, err
	}
	if err := eng.Start(sess.Strategy); err != nil {
		return nil, err
	}

	for i := 0; i < sess.Steps; i++ {
		if _, err := eng.Step(); err != nil {
			return nil, fmt.Errorf("failed to replay session %s: %w", sess.ID, err)
		}
	}
	for _, a := range sess.Moves {
		eng.MovePlayer(a)
	}
	return eng, nil
}

// record copies the engine progress into the session record.
func (m *Manager) record(sess *domain.Session, eng *labyrinth.Engine) domain.Snapshot {
	snap := eng.Snapshot()
	sess.Steps = snap.Steps
	sess.Status = snap.Status
	sess.NumExplored = snap.NumExplored
	sess.PathLength = snap.Solution.Len()
	sess.UpdatedAt = time.Now().UTC()
	return snap
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.store.Load(ctx, sessionID)
		return err
	})
	return sess, err
}

// Save persists the session record.
func (m *Manager) Save(ctx context.Context, sess *domain.Session) error {
	return m.WithLock(ctx, sess.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, sess)
	})
}

// Delete removes the session from the store.
// Deleting an unknown session returns domain.ErrSessionNotFound.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, err := m.store.Load(ctx, sessionID); err != nil {
			return err
		}
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			// The request context may be canceled by now; the release must still go out.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// IsNotFound reports whether err means the session or its maze does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrMazeNotFound)
}

// gate wraps hooks so they only fire while *live is true.
func gate(h domain.LifecycleHooks, live *bool) domain.LifecycleHooks {
	on := func() bool { return live != nil && *live }
	var g domain.LifecycleHooks
	if h.OnSearchStart != nil {
		g.OnSearchStart = func(ctx context.Context, e *domain.SearchEvent) {
			if on() {
				h.OnSearchStart(ctx, e)
			}
		}
	}
	if h.OnNodeExpand != nil {
		g.OnNodeExpand = func(ctx context.Context, e *domain.ExpandEvent) {
			if on() {
				h.OnNodeExpand(ctx, e)
			}
		}
	}
	if h.OnSolved != nil {
		g.OnSolved = func(ctx context.Context, e *domain.SearchEvent) {
			if on() {
				h.OnSolved(ctx, e)
			}
		}
	}
	if h.OnExhausted != nil {
		g.OnExhausted = func(ctx context.Context, e *domain.SearchEvent) {
			if on() {
				h.OnExhausted(ctx, e)
			}
		}
	}
	return g
}
