package session_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/labyrinth/pkg/adapters/memory"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
	"github.com/aretw0/labyrinth/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridor = `#######
#A    #
# ### #
#   #B#
#######`

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.Session
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sess *domain.Session) error {
	time.Sleep(5 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.Session)
	}
	s.data[sess.ID] = sess.Clone()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	time.Sleep(5 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.data[sessionID]; ok {
		return sess.Clone(), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func newManager(store ports.SessionStore, opts ...session.Option) *session.Manager {
	loader := memory.NewLoader(map[string]string{
		"corridor": corridor,
		"blocked":  "A#B",
	})
	return session.NewManager(store, loader, opts...)
}

func TestManager_CreateAndStep(t *testing.T) {
	mgr := newManager(memory.NewStore())
	ctx := context.Background()

	sess, snap, err := mgr.Create(ctx, "corridor", "a*")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, domain.StrategyAStar, sess.Strategy)
	assert.Equal(t, domain.StatusSearching, snap.Status)
	assert.Zero(t, snap.Steps)

	sess, snap, err = mgr.Step(ctx, sess.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, sess.Steps)
	assert.Equal(t, 3, snap.NumExplored)

	// A large count stops at the end of the search.
	sess, snap, err = mgr.Step(ctx, sess.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSolved, sess.Status)
	assert.Equal(t, domain.StatusSolved, snap.Status)
	assert.Equal(t, 6, sess.PathLength)
	assert.Equal(t, snap.Steps, sess.Steps)

	stored, err := mgr.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Steps, stored.Steps)
}

func TestManager_ReplayReproducesSnapshot(t *testing.T) {
	for _, strategy := range domain.Strategies {
		t.Run(string(strategy), func(t *testing.T) {
			mgr := newManager(memory.NewStore())
			ctx := context.Background()

			sess, _, err := mgr.Create(ctx, "corridor", strategy)
			require.NoError(t, err)

			_, live, err := mgr.Step(ctx, sess.ID, 4)
			require.NoError(t, err)

			restored, err := mgr.Snapshot(ctx, sess.ID)
			require.NoError(t, err)
			assert.Equal(t, live, restored)
		})
	}
}

func TestManager_Move(t *testing.T) {
	mgr := newManager(memory.NewStore())
	ctx := context.Background()

	sess, _, err := mgr.Create(ctx, "corridor", domain.StrategyBFS)
	require.NoError(t, err)

	_, snap, err := mgr.Move(ctx, sess.ID, domain.ActionUp)
	require.NoError(t, err)
	assert.Equal(t, domain.Cell{Row: 1, Col: 1}, snap.Player, "blocked move is ignored")

	sess, snap, err = mgr.Move(ctx, sess.ID, domain.ActionRight)
	require.NoError(t, err)
	assert.Equal(t, domain.Cell{Row: 1, Col: 2}, snap.Player)
	assert.Equal(t, []domain.Action{domain.ActionRight}, sess.Moves)

	restored, err := mgr.Snapshot(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cell{Row: 1, Col: 2}, restored.Player)
}

func TestManager_Errors(t *testing.T) {
	mgr := newManager(memory.NewStore())
	ctx := context.Background()

	_, _, err := mgr.Create(ctx, "corridor", "zigzag")
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)

	_, _, err = mgr.Create(ctx, "missing", domain.StrategyBFS)
	assert.ErrorIs(t, err, domain.ErrMazeNotFound)
	assert.True(t, session.IsNotFound(err))

	_, _, err = mgr.Step(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.ErrorIs(t, mgr.Delete(ctx, "nope"), domain.ErrSessionNotFound)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "failed creates must not leave sessions behind")
}

func TestManager_Delete(t *testing.T) {
	mgr := newManager(memory.NewStore())
	ctx := context.Background()

	sess, _, err := mgr.Create(ctx, "blocked", domain.StrategyDFS)
	require.NoError(t, err)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{sess.ID}, ids)

	require.NoError(t, mgr.Delete(ctx, sess.ID))
	_, err = mgr.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_ConcurrentSteps(t *testing.T) {
	mgr := newManager(&SlowStore{}, session.WithIDGenerator(func() string { return "race-test" }))
	ctx := context.Background()

	sess, _, err := mgr.Create(ctx, "corridor", domain.StrategyBFS)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := mgr.Step(ctx, sess.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Serialized read-modify-write: no step is lost.
	stored, err := mgr.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Steps)
}

func TestManager_HooksSkipReplay(t *testing.T) {
	var started, expanded atomic.Int32
	hooks := domain.LifecycleHooks{
		OnSearchStart: func(context.Context, *domain.SearchEvent) { started.Add(1) },
		OnNodeExpand:  func(context.Context, *domain.ExpandEvent) { expanded.Add(1) },
	}
	mgr := newManager(memory.NewStore(), session.WithLifecycleHooks(hooks))
	ctx := context.Background()

	sess, _, err := mgr.Create(ctx, "corridor", domain.StrategyBFS)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err = mgr.Step(ctx, sess.ID, 1)
		require.NoError(t, err)
	}
	_, err = mgr.Snapshot(ctx, sess.ID)
	require.NoError(t, err)

	assert.Equal(t, int32(1), started.Load())
	assert.Equal(t, int32(3), expanded.Load())
}

type countingLocker struct {
	locks, unlocks atomic.Int32
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if ttl != time.Second {
		return nil, fmt.Errorf("unexpected ttl %s", ttl)
	}
	l.locks.Add(1)
	return func(context.Context) error {
		l.unlocks.Add(1)
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	mgr := newManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Second))
	ctx := context.Background()

	sess, _, err := mgr.Create(ctx, "corridor", domain.StrategyBFS)
	require.NoError(t, err)
	_, _, err = mgr.Step(ctx, sess.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, int32(2), locker.locks.Load())
	assert.Equal(t, int32(2), locker.unlocks.Load())
}
