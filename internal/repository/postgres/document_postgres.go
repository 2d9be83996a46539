package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"mydocs/internal/model"
	"mydocs/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentWithType = `
	SELECT d.id, d.user_id, d.type_id, d.file, d.created_at, d.updated_at,
	       t.id, t.title, t.abbreviation, t.created_at, t.updated_at
	FROM my_docs d
	JOIN types t ON t.id = d.type_id
`

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO my_docs (user_id, type_id, file)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, type_id, file, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q, doc.UserID, doc.TypeID, doc.File)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.TypeID,
		&out.File,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// FindByID fetches a single active document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = documentWithType + `WHERE d.id = $1 AND d.deleted_at IS NULL`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListByOwner returns the owner's active documents in natural store order.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error) {
	const q = documentWithType + `WHERE d.user_id = $1 AND d.deleted_at IS NULL ORDER BY d.id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes the type reference and filename of an active document.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE my_docs SET type_id = $1, file = $2, updated_at = now()
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING id, user_id, type_id, file, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q, doc.TypeID, doc.File, doc.ID)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.TypeID,
		&out.File,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// SoftDelete sets deleted_at on an active document. It returns sql.ErrNoRows
// if there was no active row to delete.
func (r *DocumentPostgres) SoftDelete(ctx context.Context, id int64) error {
	const q = `UPDATE my_docs SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
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

// ActiveFiles lists the filenames referenced by active documents.
func (r *DocumentPostgres) ActiveFiles(ctx context.Context) ([]string, error) {
	const q = `SELECT file FROM my_docs WHERE deleted_at IS NULL`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]string, 0)
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*model.Document, error) {
	var d model.Document
	var t model.Type
	if err := s.Scan(
		&d.ID,
		&d.UserID,
		&d.TypeID,
		&d.File,
		&d.CreatedAt,
		&d.UpdatedAt,
		&t.ID,
		&t.Title,
		&t.Abbreviation,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.Type = &t
	return &d, nil
}

// foreign_key_violation
const pgForeignKeyViolation = "23503"

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return errors.Join(repository.ErrReferenceViolation, err)
	}
	return err
}
