package view

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/romansashin/as-app/internal/content"
	"github.com/romansashin/as-app/internal/mediasession"
	"github.com/romansashin/as-app/internal/player"
	"github.com/romansashin/as-app/internal/session"
	"github.com/romansashin/as-app/internal/wakelock"
)

var ErrPracticeNotFound = errors.New("practice not found")

// Service is the slice of the API client the view needs.
type Service interface {
	Content(ctx context.Context) (*content.Catalog, error)
	Progress(ctx context.Context) (map[string]int, error)
	AddProgress(ctx context.Context, practiceID string) (int64, error)
}

// PracticeView owns everything that lives for one open practice: the
// session, its recorder, the signal aggregator and the wake-lock
// coordinator. All latches are fields of instances owned here — two views
// never share state, so two open tabs track independently.
type PracticeView struct {
	practice *content.Practice
	category *content.Category

	recorder   *session.Recorder
	aggregator *player.Aggregator
	wake       *wakelock.Coordinator
	media      mediasession.Presenter

	mu     sync.Mutex
	closed bool
}

// Open loads the catalog and prior progress, then wires the client-side
// pipeline: surface signals → aggregator → recorder → ledger write, with
// the wake lock armed and now-playing metadata announced on first play. A
// progress read failure is treated as "no progress yet", never as a fatal
// load error.
func Open(ctx context.Context, svc Service, surface player.Surface, locker wakelock.Locker, media mediasession.Presenter, clk clock.Clock, onCount func(int), practiceID string) (*PracticeView, error) {
	catalog, err := svc.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	practice, ok := catalog.FindPractice(practiceID)
	if !ok {
		return nil, ErrPracticeNotFound
	}
	category, _ := catalog.FindCategory(practice.CategoryID)

	count := 0
	if progress, err := svc.Progress(ctx); err != nil {
		log.Printf("view: progress load failed, starting at zero: %v", err)
	} else {
		count = progress[practiceID]
	}

	if media == nil {
		media = mediasession.NoopPresenter{}
	}

	wake := wakelock.NewCoordinator(locker)
	sess := session.NewSession("", practiceID)
	recorder := session.NewRecorder(sess, svc, wake, clk, onCount)
	recorder.SetCount(count)

	// The aggregator latches, so the metadata announcement happens at
	// most once per view.
	md := mediasession.Metadata{Title: practice.Title}
	if category != nil {
		md.Category = category.Name
	}
	aggregator := player.NewAggregator(surface, clk, func() {
		media.NowPlaying(md)
		recorder.OnFirstPlay()
	})
	aggregator.Start()

	return &PracticeView{
		practice:   practice,
		category:   category,
		recorder:   recorder,
		aggregator: aggregator,
		wake:       wake,
		media:      media,
	}, nil
}

func (v *PracticeView) Practice() *content.Practice { return v.practice }
func (v *PracticeView) Category() *content.Category { return v.category }

// SetDwell shortens the dwell window. Honored only before the first play
// signal arrives.
func (v *PracticeView) SetDwell(d time.Duration) {
	v.recorder.SetDwell(d)
}

func (v *PracticeView) Count() int           { return v.recorder.Count() }
func (v *PracticeView) Remaining() int       { return v.recorder.Remaining() }
func (v *PracticeView) State() session.State { return v.recorder.State() }

// Click forwards a user interaction to the aggregator's fallback probe.
func (v *PracticeView) Click() {
	v.aggregator.Click()
}

// OnVisibilityRegained re-acquires the wake lock after the app returns to
// the foreground.
func (v *PracticeView) OnVisibilityRegained() {
	v.wake.OnVisibilityRegained()
}

// Teardown releases every resource the view owns: detaches the aggregator,
// abandons any pending dwell timer, drops the wake lock and clears the
// now-playing metadata. Idempotent.
func (v *PracticeView) Teardown() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()

	v.aggregator.Close()
	v.recorder.Close()
	v.wake.Release()
	v.media.Clear()
}
