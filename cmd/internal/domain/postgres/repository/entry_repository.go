package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"devjournal/cmd/internal/domain/entity"
	"devjournal/cmd/internal/domain/postgres"
)

const entryColumns = `id, title, content, created_at, updated_at`

// PostgresEntryRepository implements the entry store over a postgres.DBTX.
// Ids and timestamps come from column defaults and the updated_at trigger.
type PostgresEntryRepository struct {
	db postgres.DBTX
}

func NewEntryRepository(db postgres.DBTX) *PostgresEntryRepository {
	return &PostgresEntryRepository{db: db}
}

func (r *PostgresEntryRepository) FindAll(ctx context.Context) ([]*entity.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []*entity.Entry
	for rows.Next() {
		var e entity.Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresEntryRepository) FindByID(ctx context.Context, id string) (*entity.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to select entry %s: %w", id, err)
	}
	return entry, nil
}

func (r *PostgresEntryRepository) Create(ctx context.Context, entry *entity.Entry) error {
	query := `INSERT INTO entries (title, content) VALUES ($1, $2)
		RETURNING ` + entryColumns

	row := r.db.QueryRowContext(ctx, query, entry.Title, entry.Content)
	if err := row.Scan(&entry.ID, &entry.Title, &entry.Content, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (r *PostgresEntryRepository) Update(ctx context.Context, id, title, content string) (*entity.Entry, error) {
	query := `UPDATE entries SET title = $1, content = $2 WHERE id = $3
		RETURNING ` + entryColumns

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, title, content, id))
	if err != nil {
		return nil, fmt.Errorf("failed to update entry %s: %w", id, err)
	}
	return entry, nil
}

func (r *PostgresEntryRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM entries WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete entry %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

// scanEntry maps sql.ErrNoRows to a nil entry.
func scanEntry(row *sql.Row) (*entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(&e.ID, &e.Title, &e.Content, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
