package storage

import "time"

// CompletionEvent is one durable record of a finished listen. Rows are
// append-only: never updated, never deleted. Multiple events per
// (user, practice) pair are expected — repeat listens are the point.
type CompletionEvent struct {
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	PracticeID string    `db:"practice_id" json:"practiceId"`
	OccurredAt time.Time `db:"completed_at" json:"occurredAt"`
}
