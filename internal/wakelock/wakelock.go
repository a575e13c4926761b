package wakelock

import "context"

// Lock is a held platform wake lock.
type Lock interface {
	Release() error
}

// Locker requests wake locks from whatever capability the platform has.
// Acquisition is allowed to fail; callers are expected to degrade silently.
type Locker interface {
	Acquire(ctx context.Context) (Lock, error)
}
