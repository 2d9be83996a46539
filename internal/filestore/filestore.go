// Package filestore places, replaces and removes document files inside the storage namespace.
// It knows nothing about database rows.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"mydocs/internal/storage"
)

// Namespace is the fixed key prefix under which every document file is stored.
const Namespace = "api/docs/"

var (
	ErrEmptyContent    = errors.New("file content is empty")
	ErrInvalidEncoding = errors.New("invalid base64 file payload")
	ErrStorageWrite    = errors.New("storage write failed")
)

// FileStore owns physical file placement for documents.
type FileStore interface {
	// Save writes content under a new server-generated filename. originalName only
	// contributes its extension.
	Save(ctx context.Context, content []byte, originalName string) (string, error)

	// Write decodes a "<mime-type>;base64,<data>" payload and stores it under a new
	// filename. No other file is touched; a malformed payload never reaches storage.
	Write(ctx context.Context, payload string) (string, error)

	// Replace is Write followed by the removal of existing (when non-empty). existing
	// is only removed once the new file is written.
	Replace(ctx context.Context, existing, payload string) (string, error)

	// Remove deletes a stored file. Removing a missing file is a no-op.
	Remove(ctx context.Context, filename string) error

	// Open streams a stored file back.
	Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error)

	// List returns the files currently present in the namespace.
	List(ctx context.Context) ([]StoredFile, error)

	// URL returns the public reference of a stored file.
	URL(filename string) string
}

// StoredFile describes a file present in the namespace.
type StoredFile struct {
	Name         string
	Size         int64
	LastModified time.Time
}

type fileStore struct {
	backend   storage.Storage
	publicURL string
	logger    *slog.Logger
	metrics   *Metrics
	newName   func(ext string) string
}

// New creates a FileStore on top of a storage backend. publicBaseURL is prepended to
// "/"+Namespace+filename when building file URLs; metrics may be nil.
func New(backend storage.Storage, publicBaseURL string, logger *slog.Logger, metrics *Metrics) FileStore {
	return &fileStore{
		backend:   backend,
		publicURL: strings.TrimRight(publicBaseURL, "/"),
		logger:    logger.With("component", "filestore"),
		metrics:   metrics,
		newName:   uuidName,
	}
}

// uuidName generates a random 128-bit identifier, so concurrent uploads never share a key.
func uuidName(ext string) string {
	return uuid.New().String() + ext
}

func key(filename string) string {
	return Namespace + filename
}

func (s *fileStore) Save(ctx context.Context, content []byte, originalName string) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyContent
	}

	name := s.newName(extensionOf(originalName))
	if err := s.write(ctx, name, content, "", map[string]string{"original-filename": originalName}); err != nil {
		s.metrics.incFailure("save")
		return "", err
	}

	s.metrics.incSaved()
	s.logger.Info("file stored", "filename", name, "size", len(content))
	return name, nil
}

func (s *fileStore) Write(ctx context.Context, payload string) (string, error) {
	p, err := DecodePayload(payload)
	if err != nil {
		return "", err
	}

	name := s.newName(p.Extension)
	if err := s.write(ctx, name, p.Content, p.MimeType, nil); err != nil {
		s.metrics.incFailure("write")
		return "", err
	}

	s.metrics.incSaved()
	s.logger.Info("file written", "filename", name, "size", len(p.Content))
	return name, nil
}

func (s *fileStore) Replace(ctx context.Context, existing, payload string) (string, error) {
	name, err := s.Write(ctx, payload)
	if err != nil {
		return "", err
	}

	if existing != "" {
		if err := s.Remove(ctx, existing); err != nil {
			// keep the previous file authoritative; drop the one just written
			if delErr := s.backend.Delete(ctx, key(name)); delErr != nil {
				s.logger.Error("cleanup of replacement file failed", "filename", name, "error", delErr)
			}
			return "", fmt.Errorf("replace %s: %w", existing, err)
		}
	}

	s.logger.Info("file replaced", "previous", existing, "filename", name)
	return name, nil
}

func (s *fileStore) Remove(ctx context.Context, filename string) error {
	if filename == "" {
		return nil
	}
	if err := s.backend.Delete(ctx, key(filename)); err != nil {
		s.metrics.incFailure("remove")
		return fmt.Errorf("%w: remove %s: %w", ErrStorageWrite, filename, err)
	}
	s.metrics.incRemoved()
	return nil
}

func (s *fileStore) Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error) {
	return s.backend.Get(ctx, key(filename))
}

func (s *fileStore) List(ctx context.Context) ([]StoredFile, error) {
	objs, err := s.backend.List(ctx, Namespace)
	if err != nil {
		return nil, err
	}
	files := make([]StoredFile, 0, len(objs))
	for _, o := range objs {
		name := strings.TrimPrefix(o.Key, Namespace)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		files = append(files, StoredFile{Name: name, Size: o.Size, LastModified: o.LastModified})
	}
	return files, nil
}

func (s *fileStore) URL(filename string) string {
	return s.publicURL + "/" + key(filename)
}

func (s *fileStore) write(ctx context.Context, name string, content []byte, contentType string, meta map[string]string) error {
	_, err := s.backend.Put(ctx, key(name), bytes.NewReader(content), storage.PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: contentType,
		Metadata:    meta,
	})
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorageWrite, name, err)
	}
	return nil
}

func invalidEncoding(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidEncoding, reason)
}
