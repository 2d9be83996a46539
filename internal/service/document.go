package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"mydocs/internal/filestore"
	"mydocs/internal/model"
	"mydocs/internal/repository"
	"mydocs/internal/storage"
)

// Upload carries the multipart file part after the transport layer checked it.
// Valid is false when the part was absent, unreadable or over the size limit.
type Upload struct {
	Content  []byte
	Filename string
	Valid    bool
}

// UpdateInput lists the optional changes of an update. A nil TypeID keeps the
// current type; an empty File keeps the current file.
type UpdateInput struct {
	TypeID *int64
	File   string
}

// DocumentService defines the use cases for handling documents.
// Every method takes the authenticated requester explicitly.
type DocumentService interface {
	// List returns every active document of the owner with its Type and URL.
	List(ctx context.Context, ownerID int64) ([]model.Document, error)

	// Create stores the uploaded file, then inserts the record. A failed insert leaves the
	// stored file in place and reports it inside an ErrPersistence error.
	Create(ctx context.Context, ownerID, typeID int64, upload Upload) (*model.Document, error)

	// Get returns a document owned by requesterID.
	Get(ctx context.Context, id, requesterID int64) (*model.Document, error)

	// Update changes the type and/or replaces the file of a document owned by requesterID.
	Update(ctx context.Context, id, requesterID int64, in UpdateInput) (*model.Document, error)

	// Delete soft-deletes the record and then reclaims the file. A failed reclaim is
	// logged and does not fail the call.
	Delete(ctx context.Context, id, requesterID int64) error

	// Open streams the stored file of a document owned by requesterID.
	Open(ctx context.Context, id, requesterID int64) (io.ReadCloser, storage.ObjectInfo, error)
}

type documentService struct {
	files  filestore.FileStore
	docs   repository.DocumentRepository
	types  repository.TypeRepository
	logger *slog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(files filestore.FileStore, docs repository.DocumentRepository, types repository.TypeRepository, logger *slog.Logger) DocumentService {
	return &documentService{
		files:  files,
		docs:   docs,
		types:  types,
		logger: logger.With("component", "document_service"),
	}
}

func (s *documentService) List(ctx context.Context, ownerID int64) ([]model.Document, error) {
	if ownerID <= 0 {
		return nil, ErrUnauthenticated
	}
	items, err := s.docs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	for i := range items {
		items[i].URL = s.files.URL(items[i].File)
	}
	return items, nil
}

func (s *documentService) Create(ctx context.Context, ownerID, typeID int64, upload Upload) (*model.Document, error) {
	if ownerID <= 0 {
		return nil, ErrUnauthenticated
	}
	if !upload.Valid || len(upload.Content) == 0 {
		return nil, ErrMissingFile
	}
	tp, err := s.findType(ctx, typeID)
	if err != nil {
		return nil, err
	}

	name, err := s.files.Save(ctx, upload.Content, upload.Filename)
	if err != nil {
		return nil, err
	}

	stored, err := s.docs.Create(ctx, &model.Document{UserID: ownerID, TypeID: tp.ID, File: name})
	if err != nil {
		s.logger.Warn("document insert failed, stored file left orphaned",
			"owner_id", ownerID, "filename", name, "error", err)
		return nil, fmt.Errorf("%w: insert document (orphaned file %s): %w", ErrPersistence, name, err)
	}

	stored.Type = tp
	stored.URL = s.files.URL(stored.File)
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, id, requesterID int64) (*model.Document, error) {
	doc, err := s.load(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	doc.URL = s.files.URL(doc.File)
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id, requesterID int64, in UpdateInput) (*model.Document, error) {
	doc, err := s.load(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	next := *doc
	if in.TypeID != nil {
		tp, err := s.findType(ctx, *in.TypeID)
		if err != nil {
			return nil, err
		}
		next.TypeID = tp.ID
		next.Type = tp
	}

	// The new file is written first and the previous one is only removed once the
	// row names the new file, so the row never points at a missing file.
	written := ""
	if in.File != "" {
		name, err := s.files.Write(ctx, in.File)
		if err != nil {
			return nil, err
		}
		written = name
		next.File = name
	}

	stored, err := s.docs.Update(ctx, &next)
	if err != nil {
		if written != "" {
			if rmErr := s.files.Remove(ctx, written); rmErr != nil {
				s.logger.Warn("document update failed, new file left orphaned",
					"document_id", id, "filename", written, "error", rmErr)
				return nil, fmt.Errorf("%w: update document %d (orphaned file %s, %s kept): %w",
					ErrPersistence, id, written, doc.File, err)
			}
		}
		return nil, fmt.Errorf("%w: update document %d: %w", ErrPersistence, id, err)
	}

	if written != "" {
		if err := s.files.Remove(ctx, doc.File); err != nil {
			s.logger.Error("file reclaim failed after document update",
				"document_id", id, "filename", doc.File, "error", err)
		}
	}

	stored.Type = next.Type
	stored.URL = s.files.URL(stored.File)
	return stored, nil
}

func (s *documentService) Delete(ctx context.Context, id, requesterID int64) error {
	doc, err := s.load(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.docs.SoftDelete(ctx, doc.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: delete document %d: %w", ErrPersistence, id, err)
	}

	if err := s.files.Remove(ctx, doc.File); err != nil {
		s.logger.Error("file reclaim failed after document delete",
			"document_id", id, "filename", doc.File, "error", err)
	}
	return nil
}

func (s *documentService) Open(ctx context.Context, id, requesterID int64) (io.ReadCloser, storage.ObjectInfo, error) {
	doc, err := s.load(ctx, id, requesterID)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}

	rc, info, err := s.files.Open(ctx, doc.File)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ObjectInfo{}, fmt.Errorf("%w: file %s is missing", ErrNotFound, doc.File)
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("open file %s: %w", doc.File, err)
	}
	return rc, info, nil
}

// load fetches an active document and applies the ownership check.
func (s *documentService) load(ctx context.Context, id, requesterID int64) (*model.Document, error) {
	if requesterID <= 0 {
		return nil, ErrUnauthenticated
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find document %d: %w", id, err)
	}
	if err := authorize(doc, requesterID); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) findType(ctx context.Context, typeID int64) (*model.Type, error) {
	if typeID <= 0 {
		return nil, ErrTypeNotFound
	}
	tp, err := s.types.FindByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("find type %d: %w", typeID, err)
	}
	return tp, nil
}

// authorize is the single ownership rule: only the owner may read or change a document.
func authorize(doc *model.Document, requesterID int64) error {
	if !doc.OwnedBy(requesterID) {
		return ErrUnauthorized
	}
	return nil
}
