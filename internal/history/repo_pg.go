package history

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new history entry.
func (r *PGRepo) Create(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO keyword_analyses (
	id, keyword, model, source, overall_score, competition, keyword_difficulty, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.Keyword,
		entry.Model,
		entry.Source,
		entry.OverallScore,
		entry.Competition,
		entry.KeywordDifficulty,
		entry.CreatedAt,
	)
	return err
}

// List returns entries newest first, with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, keyword, model, source, overall_score, competition, keyword_difficulty, created_at
FROM keyword_analyses
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID,
			&e.Keyword,
			&e.Model,
			&e.Source,
			&e.OverallScore,
			&e.Competition,
			&e.KeywordDifficulty,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry.
func (r *PGRepo) Clear(ctx context.Context) (int, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM keyword_analyses`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
