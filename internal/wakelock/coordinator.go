package wakelock

import (
	"context"
	"log"
	"sync"
)

// Coordinator keeps at most one wake lock held for the active listening
// session. Every failure is swallowed: losing the lock degrades to the OS
// sleeping the device, never to a broken session. Nothing here may throw
// into the caller.
type Coordinator struct {
	locker Locker

	mu    sync.Mutex
	held  Lock
	armed bool

	// gen counts acquire/release transitions. A platform acquire that was
	// in flight across a newer transition must not install its lock.
	gen uint64
}

func NewCoordinator(locker Locker) *Coordinator {
	return &Coordinator{locker: locker}
}

// Acquire requests a wake lock, releasing any previously held one first so
// at most one is ever held.
func (c *Coordinator) Acquire() {
	c.mu.Lock()
	held := c.held
	c.held = nil
	c.armed = true
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	if held != nil {
		if err := held.Release(); err != nil {
			log.Printf("wakelock: release of previous lock failed: %v", err)
		}
	}

	lock, err := c.locker.Acquire(context.Background())
	if err != nil {
		log.Printf("wakelock: acquire failed: %v", err)
		return
	}

	c.mu.Lock()
	if c.gen != gen || c.held != nil {
		// A Release or a newer Acquire overtook this one; the fresh lock
		// is surplus and must not be installed.
		c.mu.Unlock()
		if err := lock.Release(); err != nil {
			log.Printf("wakelock: release of surplus lock failed: %v", err)
		}
		return
	}
	c.held = lock
	c.mu.Unlock()
}

// Release drops the held lock if any. Safe to call when none is held.
func (c *Coordinator) Release() {
	c.mu.Lock()
	held := c.held
	c.held = nil
	c.gen++
	c.mu.Unlock()

	if held == nil {
		return
	}
	if err := held.Release(); err != nil {
		log.Printf("wakelock: release failed: %v", err)
	}
}

// OnVisibilityRegained re-acquires the lock the OS dropped while the app
// was hidden. Only meaningful once a session has armed the lock.
func (c *Coordinator) OnVisibilityRegained() {
	c.mu.Lock()
	armed := c.armed
	c.mu.Unlock()

	if armed {
		c.Acquire()
	}
}

// Held reports whether a lock is currently held.
func (c *Coordinator) Held() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held != nil
}
