package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sqlx.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &SQLiteRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *SQLiteRepository) createTables() error {
	// No UNIQUE constraint on (user_id, practice_id): every repeat listen
	// is a new row.
	schema := `
	CREATE TABLE IF NOT EXISTS user_progress (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		practice_id TEXT NOT NULL,
		completed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_user_progress_user_practice
	ON user_progress(user_id, practice_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *SQLiteRepository) AppendCompletion(userID, practiceID string) (int64, error) {
	res, err := r.db.Exec(
		`INSERT INTO user_progress (user_id, practice_id) VALUES (?, ?)`,
		userID, practiceID,
	)
	if err != nil {
		return 0, fmt.Errorf("append completion: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ProgressByUser(userID string) (map[string]int, error) {
	var rows []struct {
		PracticeID string `db:"practice_id"`
		Count      int    `db:"count"`
	}

	err := r.db.Select(&rows, `
		SELECT practice_id, COUNT(*) AS count
		FROM user_progress
		WHERE user_id = ?
		GROUP BY practice_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate progress: %w", err)
	}

	progress := make(map[string]int, len(rows))
	for _, row := range rows {
		progress[row.PracticeID] = row.Count
	}

	return progress, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
