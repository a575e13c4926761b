package storage

// Repository is the progress ledger: an append-only event log plus its
// aggregation read path. Counts are always derived from the log at query
// time; there is no maintained counter that could drift from it.
type Repository interface {
	// AppendCompletion inserts one completion event with a server-assigned
	// timestamp and returns its id. Duplicates are not rejected.
	AppendCompletion(userID, practiceID string) (int64, error)

	// ProgressByUser groups the user's events by practice and returns the
	// counts. A user with no events gets an empty map, not an error.
	ProgressByUser(userID string) (map[string]int, error)

	Close() error
}
