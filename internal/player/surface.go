package player

// Events a playback surface can report. Widgets are sloppy about which one
// they fire, so both are treated as "audio started".
const (
	EventPlay    = "play"
	EventPlaying = "playing"
)

// Surface is the embedded audio widget, treated as a black box that emits
// unreliable play signals. Implementations wrap whatever player the
// frontend ships.
type Surface interface {
	// Ready reports whether the widget has mounted its container. A widget
	// that never loads simply stays not-ready; that is not an error.
	Ready() bool

	// On subscribes to a widget-level event through the widget's own API.
	// The API is best-effort and may fail outright.
	On(event string, fn func()) error

	// Elements returns the media elements the widget currently manages.
	// Elements are created asynchronously and can be replaced wholesale,
	// so an empty slice now says nothing about a moment later.
	Elements() []Element
}

// Element is one managed media element.
type Element interface {
	On(event string, fn func())
	Paused() bool
}
