package mediasession

import "log"

// Metadata is what the platform shows for the current playback.
type Metadata struct {
	Title    string
	Category string
}

// Presenter pushes now-playing metadata to whatever media-session
// capability the platform has. Metadata is cosmetic: failures are logged,
// never propagated.
type Presenter interface {
	NowPlaying(md Metadata)
	Clear()
}

// NoopPresenter is the capability-absent fallback.
type NoopPresenter struct{}

func (NoopPresenter) NowPlaying(Metadata) {}
func (NoopPresenter) Clear()              {}

// LogPresenter announces metadata on the process log. Used by the
// simulator, which has no media surface to hand the metadata to.
type LogPresenter struct{}

func (LogPresenter) NowPlaying(md Metadata) {
	if md.Category != "" {
		log.Printf("now playing: %s (%s)", md.Title, md.Category)
		return
	}
	log.Printf("now playing: %s", md.Title)
}

func (LogPresenter) Clear() {
	log.Println("now playing: cleared")
}
