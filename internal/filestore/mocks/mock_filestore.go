package mocks

import (
	"context"
	"io"

	"mydocs/internal/filestore"
	"mydocs/internal/storage"

	"github.com/stretchr/testify/mock"
)

var _ filestore.FileStore = (*MockFileStore)(nil)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, content []byte, originalName string) (string, error) {
	args := m.Called(ctx, content, originalName)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Write(ctx context.Context, payload string) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Replace(ctx context.Context, existing, payload string) (string, error) {
	args := m.Called(ctx, existing, payload)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Remove(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

func (m *MockFileStore) Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockFileStore) List(ctx context.Context) ([]filestore.StoredFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]filestore.StoredFile), args.Error(1)
}

func (m *MockFileStore) URL(filename string) string {
	return "/api/docs/" + filename
}
