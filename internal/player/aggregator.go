package player

import (
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// Widgets mount their container asynchronously. Poll for it a bounded
	// number of times, then give up log-only: the session degrades to
	// "completion never detected", which is acceptable.
	attachDelay    = 100 * time.Millisecond
	attachInterval = 200 * time.Millisecond
	attachAttempts = 10

	// How long after a user interaction to probe whether anything is
	// actually playing.
	clickProbeDelay = 500 * time.Millisecond

	// Poll cadence for media elements created after attach.
	watchInterval = 200 * time.Millisecond
)

// Aggregator normalizes the surface's noisy play signals into one logical
// play event. The callback fires at most once for the lifetime of the
// aggregator, no matter how many raw signals arrive or from which source.
type Aggregator struct {
	surface Surface
	clock   clock.Clock
	onPlay  func()

	mu     sync.Mutex
	fired  bool
	closed bool
	seen   map[Element]bool

	done chan struct{}
}

func NewAggregator(surface Surface, clk clock.Clock, onPlay func()) *Aggregator {
	return &Aggregator{
		surface: surface,
		clock:   clk,
		onPlay:  onPlay,
		seen:    make(map[Element]bool),
		done:    make(chan struct{}),
	}
}

// Start begins watching the surface. The initial delay gives the widget a
// head start before the first attach attempt.
func (a *Aggregator) Start() {
	timer := a.clock.Timer(attachDelay)
	go a.run(timer)
}

func (a *Aggregator) run(timer *clock.Timer) {
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-a.done:
		return
	}

	for attempt := 1; ; attempt++ {
		if a.attach() {
			return
		}
		if attempt >= attachAttempts {
			log.Printf("player: no widget after %d attempts, play detection disabled", attachAttempts)
			return
		}

		timer.Reset(attachInterval)
		select {
		case <-timer.C:
		case <-a.done:
			return
		}
	}
}

// attach wires every signal source once the widget is mounted: the
// widget's own subscription API, handlers on each managed media element,
// and a watcher for elements created later.
func (a *Aggregator) attach() bool {
	if !a.surface.Ready() {
		return false
	}

	for _, event := range []string{EventPlay, EventPlaying} {
		if err := a.surface.On(event, a.trigger); err != nil {
			log.Printf("player: widget subscription for %q failed: %v", event, err)
		}
	}

	a.wireElements()

	ticker := a.clock.Ticker(watchInterval)
	go a.watchElements(ticker)

	return true
}

// watchElements is the late-creation watcher: widgets replace their media
// element without notice, so keep wiring new ones until the logical play
// has fired or the aggregator is closed.
func (a *Aggregator) watchElements(ticker *clock.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.mu.Lock()
			stop := a.fired || a.closed
			a.mu.Unlock()
			if stop {
				return
			}
			a.wireElements()

		case <-a.done:
			return
		}
	}
}

func (a *Aggregator) wireElements() {
	for _, el := range a.surface.Elements() {
		a.mu.Lock()
		if a.closed || a.seen[el] {
			a.mu.Unlock()
			continue
		}
		a.seen[el] = true
		a.mu.Unlock()

		el.On(EventPlay, a.trigger)
		el.On(EventPlaying, a.trigger)
	}
}

// Click is the coarse fallback for widgets that swallow their own events:
// after a user interaction, wait a beat and probe whether any managed
// element is actually playing.
func (a *Aggregator) Click() {
	timer := a.clock.Timer(clickProbeDelay)

	go func() {
		defer timer.Stop()

		select {
		case <-timer.C:
			for _, el := range a.surface.Elements() {
				if !el.Paused() {
					a.trigger()
					return
				}
			}
		case <-a.done:
		}
	}()
}

// trigger latches on the first signal; everything after is discarded.
func (a *Aggregator) trigger() {
	a.mu.Lock()
	if a.fired || a.closed {
		a.mu.Unlock()
		return
	}
	a.fired = true
	onPlay := a.onPlay
	a.mu.Unlock()

	onPlay()
}

// Fired reports whether the logical play has been emitted.
func (a *Aggregator) Fired() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fired
}

// Close stops all watching and detaches the aggregator. Idempotent.
// Signals arriving after Close are discarded; a callback already past the
// latch when Close is called may still complete, so consumers must
// tolerate one late delivery.
func (a *Aggregator) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	close(a.done)
}
