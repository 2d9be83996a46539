package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mydocs/internal/filestore"
	fsMocks "mydocs/internal/filestore/mocks"
	"mydocs/internal/logger"
	repoMocks "mydocs/internal/repository/mocks"
)

func TestOrphanSweeper_Find(t *testing.T) {
	ctx := context.Background()
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	files := new(fsMocks.MockFileStore)
	docs := new(repoMocks.MockDocumentRepository)
	files.On("List", ctx).Return([]filestore.StoredFile{
		{Name: "a.pdf", LastModified: old},
		{Name: "b.pdf", LastModified: old},
		{Name: "c.png", LastModified: old},
	}, nil)
	docs.On("ActiveFiles", ctx).Return([]string{"b.pdf"}, nil)

	found, err := NewOrphanSweeper(files, docs, logger.Discard()).Find(ctx, time.Hour)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "c.png"}, found)
}

func TestOrphanSweeper_FindSkipsRecentFiles(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	files := new(fsMocks.MockFileStore)
	docs := new(repoMocks.MockDocumentRepository)
	files.On("List", ctx).Return([]filestore.StoredFile{
		{Name: "stale.pdf", LastModified: now.Add(-2 * time.Hour)},
		{Name: "edge.pdf", LastModified: now.Add(-time.Hour)},
		{Name: "fresh.pdf", LastModified: now.Add(-time.Minute)},
	}, nil)
	docs.On("ActiveFiles", ctx).Return([]string{}, nil)

	sweeper := NewOrphanSweeper(files, docs, logger.Discard())
	sweeper.now = func() time.Time { return now }

	found, err := sweeper.Find(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale.pdf", "edge.pdf"}, found)

	found, err = sweeper.Find(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale.pdf", "edge.pdf", "fresh.pdf"}, found)
}

func TestOrphanSweeper_FindErrors(t *testing.T) {
	ctx := context.Background()

	files := new(fsMocks.MockFileStore)
	docs := new(repoMocks.MockDocumentRepository)
	files.On("List", ctx).Return([]filestore.StoredFile{{Name: "a.pdf"}}, nil)
	docs.On("ActiveFiles", ctx).Return(nil, errors.New("db fail"))

	_, err := NewOrphanSweeper(files, docs, logger.Discard()).Find(ctx, 0)
	assert.EqualError(t, err, "list referenced files: db fail")
}

func TestOrphanSweeper_Reclaim(t *testing.T) {
	ctx := context.Background()

	files := new(fsMocks.MockFileStore)
	files.On("Remove", ctx, "a.pdf").Return(ErrStorageWrite)
	files.On("Remove", ctx, "c.png").Return(nil)

	n, err := NewOrphanSweeper(files, nil, logger.Discard()).Reclaim(ctx, []string{"a.pdf", "c.png"})

	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, ErrStorageWrite)
	files.AssertExpectations(t)
}
