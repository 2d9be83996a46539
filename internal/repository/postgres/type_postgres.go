package postgres

import (
	"context"
	"database/sql"

	"mydocs/internal/model"
	"mydocs/internal/repository"
)

// TypePostgres is a PostgreSQL implementation of repository.TypeRepository.
type TypePostgres struct {
	db *sql.DB
}

// NewTypePostgres creates a new TypePostgres repository.
func NewTypePostgres(db *sql.DB) *TypePostgres {
	return &TypePostgres{db: db}
}

var _ repository.TypeRepository = (*TypePostgres)(nil)

func (r *TypePostgres) Create(ctx context.Context, t *model.Type) (*model.Type, error) {
	const q = `
		INSERT INTO types (title, abbreviation)
		VALUES ($1, $2)
		RETURNING id, title, abbreviation, created_at, updated_at
	`
	return scanType(r.db.QueryRowContext(ctx, q, t.Title, t.Abbreviation))
}

func (r *TypePostgres) FindByID(ctx context.Context, id int64) (*model.Type, error) {
	const q = `
		SELECT id, title, abbreviation, created_at, updated_at
		FROM types
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanType(r.db.QueryRowContext(ctx, q, id))
}

func (r *TypePostgres) List(ctx context.Context) ([]model.Type, error) {
	const q = `
		SELECT id, title, abbreviation, created_at, updated_at
		FROM types
		WHERE deleted_at IS NULL
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Type, 0)
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TypePostgres) Update(ctx context.Context, t *model.Type) (*model.Type, error) {
	const q = `
		UPDATE types SET title = $1, abbreviation = $2, updated_at = now()
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING id, title, abbreviation, created_at, updated_at
	`
	return scanType(r.db.QueryRowContext(ctx, q, t.Title, t.Abbreviation, t.ID))
}

// SoftDelete hides the type from reads. Documents referencing it keep the reference.
func (r *TypePostgres) SoftDelete(ctx context.Context, id int64) error {
	const q = `UPDATE types SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanType(s scanner) (*model.Type, error) {
	var t model.Type
	if err := s.Scan(&t.ID, &t.Title, &t.Abbreviation, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
