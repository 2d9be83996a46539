package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mydocs/internal/filestore"
	"mydocs/internal/repository"
)

// OrphanSweeper finds stored files that no active document references.
// Those are left behind by failed inserts and failed reclaims.
type OrphanSweeper struct {
	files  filestore.FileStore
	docs   repository.DocumentRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewOrphanSweeper constructs an OrphanSweeper over the given file store and document repository.
func NewOrphanSweeper(files filestore.FileStore, docs repository.DocumentRepository, logger *slog.Logger) *OrphanSweeper {
	return &OrphanSweeper{
		files:  files,
		docs:   docs,
		logger: logger.With("component", "orphan_sweeper"),
		now:    time.Now,
	}
}

// Find returns the unreferenced filenames in storage listing order. Files modified
// less than minAge ago are skipped: they may belong to a create or update that has
// written its file but not yet committed the row.
func (o *OrphanSweeper) Find(ctx context.Context, minAge time.Duration) ([]string, error) {
	stored, err := o.files.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored files: %w", err)
	}
	active, err := o.docs.ActiveFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list referenced files: %w", err)
	}

	referenced := make(map[string]struct{}, len(active))
	for _, f := range active {
		referenced[f] = struct{}{}
	}

	cutoff := o.now().Add(-minAge)
	orphans := make([]string, 0)
	for _, f := range stored {
		if _, ok := referenced[f.Name]; ok {
			continue
		}
		if f.LastModified.After(cutoff) {
			o.logger.Debug("orphan candidate too recent", "filename", f.Name, "last_modified", f.LastModified)
			continue
		}
		orphans = append(orphans, f.Name)
	}
	return orphans, nil
}

// Reclaim removes the given files and returns how many were removed. It keeps going
// after a failure and returns the first error.
func (o *OrphanSweeper) Reclaim(ctx context.Context, filenames []string) (int, error) {
	var firstErr error
	removed := 0
	for _, f := range filenames {
		if err := o.files.Remove(ctx, f); err != nil {
			o.logger.Error("orphan reclaim failed", "filename", f, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		o.logger.Info("orphan reclaimed", "filename", f)
		removed++
	}
	return removed, firstErr
}
