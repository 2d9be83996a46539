package repository

import (
	"context"
	"errors"

	"mydocs/internal/model"
)

// ErrReferenceViolation is returned when a write references a user or type row that does not exist.
var ErrReferenceViolation = errors.New("referenced row does not exist")

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
// Every read ignores soft-deleted rows; missing rows are reported as sql.ErrNoRows.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns an active document with its Type embedded.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// ListByOwner returns every active document of the owner with its Type embedded.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error)

	// Update persists the type reference and filename of an active document.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// SoftDelete marks an active document as deleted.
	SoftDelete(ctx context.Context, id int64) error

	// ActiveFiles returns the filenames referenced by active documents.
	ActiveFiles(ctx context.Context) ([]string, error)
}
