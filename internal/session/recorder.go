package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// DwellSeconds is how long a user must stay in a playing state before
	// the listen counts. Fixed regardless of audio length.
	DwellSeconds = 30

	// Pause before re-reading aggregated progress after a write, so the
	// re-read doesn't race an eventually-consistent store.
	settleDelay = 500 * time.Millisecond
)

// Ledger is the recorder's seam to the progress service.
type Ledger interface {
	AddProgress(ctx context.Context, practiceID string) (int64, error)
	Progress(ctx context.Context) (map[string]int, error)
}

// WakeLock is armed alongside the dwell timer and released with the view.
type WakeLock interface {
	Acquire()
	Release()
}

// Recorder turns the aggregator's one-time play signal into at most one
// ledger write per session. State: Idle → Armed → Counting → Recorded.
// Teardown before the dwell elapses abandons the timer; the write is never
// issued.
type Recorder struct {
	session *Session
	ledger  Ledger
	wake    WakeLock
	clock   clock.Clock
	onCount func(int)

	mu        sync.Mutex
	state     State
	remaining int
	count     int
	dwell     time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

func NewRecorder(s *Session, ledger Ledger, wake WakeLock, clk clock.Clock, onCount func(int)) *Recorder {
	ctx, cancel := context.WithCancel(context.Background())

	return &Recorder{
		session: s,
		ledger:  ledger,
		wake:    wake,
		clock:   clk,
		onCount: onCount,
		state:   StateIdle,
		dwell:   DwellSeconds * time.Second,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetCount seeds the displayed count with the server's prior value.
func (r *Recorder) SetCount(n int) {
	r.mu.Lock()
	r.count = n
	r.mu.Unlock()
}

// SetDwell overrides the dwell duration. Only honored before the first
// play signal.
func (r *Recorder) SetDwell(d time.Duration) {
	r.mu.Lock()
	if r.state == StateIdle {
		r.dwell = d
	}
	r.mu.Unlock()
}

func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Recorder) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// OnFirstPlay latches the session. The first call arms the wake lock and
// starts the dwell countdown; every later call is a no-op. A signal
// delivered after Close must not arm anything, or the wake lock would be
// re-acquired with nobody left to release it.
func (r *Recorder) OnFirstPlay() {
	r.mu.Lock()
	if r.state != StateIdle || r.ctx.Err() != nil {
		r.mu.Unlock()
		return
	}
	r.state = StateArmed
	dwell := r.dwell
	r.mu.Unlock()

	r.wake.Acquire()

	r.mu.Lock()
	r.state = StateCounting
	r.remaining = int(dwell / time.Second)
	r.mu.Unlock()

	// Timers are created before returning so the transition is observable
	// the moment OnFirstPlay returns.
	timer := r.clock.Timer(dwell)
	ticker := r.clock.Ticker(time.Second)
	go r.waitDwell(timer)
	go r.countdown(ticker)
}

func (r *Recorder) waitDwell(timer *clock.Timer) {
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-r.ctx.Done():
		// Session torn down: the timer is abandoned and nothing is written.
		return
	}

	r.mu.Lock()
	if r.state != StateCounting {
		r.mu.Unlock()
		return
	}
	r.state = StateRecorded
	r.mu.Unlock()

	r.record()
}

// record runs the write protocol: append, settle, re-read, publish the
// authoritative count. Any failure falls back to an optimistic local
// increment — no retry, no user-facing error. The possible discrepancy
// lasts until the next full reload and is an accepted trade-off.
func (r *Recorder) record() {
	if _, err := r.ledger.AddProgress(r.ctx, r.session.PracticeID); err != nil {
		log.Printf("session %s: progress write failed: %v", r.session.ID, err)
		r.publish(r.Count() + 1)
		return
	}

	settle := r.clock.Timer(settleDelay)
	defer settle.Stop()
	select {
	case <-settle.C:
	case <-r.ctx.Done():
		return
	}

	progress, err := r.ledger.Progress(r.ctx)
	if err != nil {
		log.Printf("session %s: progress re-read failed: %v", r.session.ID, err)
		r.publish(r.Count() + 1)
		return
	}

	r.publish(progress[r.session.PracticeID])
}

func (r *Recorder) countdown(ticker *clock.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			if r.remaining > 0 {
				r.remaining--
			}
			done := r.remaining == 0
			r.mu.Unlock()
			if done {
				return
			}

		case <-r.ctx.Done():
			return
		}
	}
}

func (r *Recorder) publish(count int) {
	r.mu.Lock()
	r.count = count
	onCount := r.onCount
	r.mu.Unlock()

	if onCount != nil {
		onCount(count)
	}
}

// Close abandons any pending dwell timer. A write not yet issued when
// Close is called will never be issued. Idempotent.
func (r *Recorder) Close() {
	r.cancel()
}
