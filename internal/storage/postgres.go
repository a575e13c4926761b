package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(connStr string) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	repo := &PostgresRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *PostgresRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_progress (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		practice_id TEXT NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_user_progress_user_practice
	ON user_progress(user_id, practice_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *PostgresRepository) AppendCompletion(userID, practiceID string) (int64, error) {
	var id int64
	err := r.db.QueryRow(
		`INSERT INTO user_progress (user_id, practice_id) VALUES ($1, $2) RETURNING id`,
		userID, practiceID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append completion: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) ProgressByUser(userID string) (map[string]int, error) {
	var rows []struct {
		PracticeID string `db:"practice_id"`
		Count      int    `db:"count"`
	}

	err := r.db.Select(&rows, `
		SELECT practice_id, COUNT(*) AS count
		FROM user_progress
		WHERE user_id = $1
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

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
