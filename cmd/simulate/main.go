// Command simulate drives the full client-side pipeline against a running
// server: a scripted widget surface fires a storm of duplicate play
// signals, the recorder dwells, and the resulting count is read back.
// Useful for poking a deployment without a browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/romansashin/as-app/internal/api"
	"github.com/romansashin/as-app/internal/mediasession"
	"github.com/romansashin/as-app/internal/player"
	"github.com/romansashin/as-app/internal/session"
	"github.com/romansashin/as-app/internal/view"
	"github.com/romansashin/as-app/internal/wakelock"
)

func main() {
	addr := flag.String("addr", "http://localhost:4000", "server base URL")
	practiceID := flag.String("practice", "", "practice id to listen to")
	userID := flag.String("user", "simulator", "user to impersonate via X-Auth-User")
	dwell := flag.Duration("dwell", session.DwellSeconds*time.Second, "dwell override for quicker runs")
	flag.Parse()

	if *practiceID == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate -practice <id> [-addr URL] [-user id] [-dwell 5s]")
		os.Exit(1)
	}

	ctx := context.Background()
	client := api.NewClient(*addr, *userID)
	surface := newScriptedSurface()

	v, err := view.Open(ctx, client, surface, wakelock.Detect(), mediasession.LogPresenter{},
		clock.New(),
		func(count int) { log.Printf("count updated: %d", count) },
		*practiceID)
	if err != nil {
		log.Fatalf("failed to open practice: %v", err)
	}
	defer v.Teardown()

	// The surface is still unmounted, so no play signal can have raced
	// this override.
	if *dwell != session.DwellSeconds*time.Second {
		v.SetDwell(*dwell)
		log.Printf("dwell overridden to %s", *dwell)
	}
	before := v.Count()
	log.Printf("practice %q (%s), prior count %d", v.Practice().Title, v.Practice().ID, before)

	// The widget mounts late, grows its element later still, then fires
	// every signal it has, several times over.
	time.Sleep(300 * time.Millisecond)
	surface.mount()
	time.Sleep(300 * time.Millisecond)
	el := surface.createElement()

	time.Sleep(500 * time.Millisecond)
	for i := 0; i < 3; i++ {
		surface.fire(player.EventPlay)
		el.play(player.EventPlay)
		el.play(player.EventPlaying)
		v.Click()
	}

	log.Printf("play storm delivered, state=%s, waiting out the dwell", v.State())

	deadline := time.After(*dwell + 3*time.Second)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			log.Printf("state=%s remaining=%ds", v.State(), v.Remaining())
		case <-deadline:
			after := v.Count()
			log.Printf("done: state=%s, count %d -> %d", v.State(), before, after)
			if after != before+1 {
				log.Printf("note: count did not grow by exactly one (server may have raced another writer)")
			}
			return
		}
	}
}
