package repository

import (
	"context"

	"mydocs/internal/model"
)

// TypeRepository defines data access for document types.
// Soft-deleted rows are invisible to every method; missing rows are reported as sql.ErrNoRows.
type TypeRepository interface {
	Create(ctx context.Context, t *model.Type) (*model.Type, error)
	FindByID(ctx context.Context, id int64) (*model.Type, error)
	List(ctx context.Context) ([]model.Type, error)
	Update(ctx context.Context, t *model.Type) (*model.Type, error)
	SoftDelete(ctx context.Context, id int64) error
}
