package session

import (
	"time"

	"github.com/google/uuid"
)

// State is the recorder's position in the session lifecycle. Recorded is
// terminal: only a new session (navigating to the practice again) resets it.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateCounting
	StateRecorded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateCounting:
		return "counting"
	case StateRecorded:
		return "recorded"
	default:
		return "unknown"
	}
}

// Session is the ephemeral tracking state for one open practice view, from
// mount to teardown. Exactly one exists per view; it is never persisted and
// never shared across views.
type Session struct {
	ID         string
	PracticeID string
	StartedAt  time.Time
}

func NewSession(id string, practiceID string) *Session {
	if id == "" {
		id = uuid.New().String()
	}

	return &Session{
		ID:         id,
		PracticeID: practiceID,
		StartedAt:  time.Now(),
	}
}
