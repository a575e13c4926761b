package wakelock

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// InhibitLocker holds the wake lock by keeping a systemd-inhibit child
// alive for as long as the lock is held. Used by the simulator on Linux
// hosts; browsers bring their own wake-lock capability.
type InhibitLocker struct {
	Why string
}

func (l *InhibitLocker) Acquire(ctx context.Context) (Lock, error) {
	why := l.Why
	if why == "" {
		why = "audio playback in progress"
	}

	cmd := exec.CommandContext(ctx, "systemd-inhibit",
		"--what=sleep:idle", "--who=as-app", "--why="+why,
		"sleep", "infinity")
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start systemd-inhibit: %w", err)
	}

	// Reap the child whenever it exits.
	go cmd.Wait()

	return &inhibitLock{cmd: cmd}, nil
}

type inhibitLock struct {
	once sync.Once
	cmd  *exec.Cmd
	err  error
}

func (l *inhibitLock) Release() error {
	l.once.Do(func() {
		l.err = l.cmd.Process.Kill()
	})
	return l.err
}

// NoopLocker is the capability-absent fallback: locks succeed and hold
// nothing.
type NoopLocker struct{}

func (NoopLocker) Acquire(ctx context.Context) (Lock, error) {
	return noopLock{}, nil
}

type noopLock struct{}

func (noopLock) Release() error { return nil }

// Detect picks the best locker for the running host.
func Detect() Locker {
	if _, err := exec.LookPath("systemd-inhibit"); err == nil {
		return &InhibitLocker{}
	}
	return NoopLocker{}
}
