package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker defines the interface for distributed concurrency control.
// It lets the Session Manager serialize steps on one session across several server replicas.
type DistributedLocker interface {
	// Lock acquires the lock for key (a session ID).
	// It blocks until the lock is acquired or the context is canceled. The lock expires after ttl.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
