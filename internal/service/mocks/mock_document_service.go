package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"mydocs/internal/model"
	"mydocs/internal/service"
	"mydocs/internal/storage"
)

type MockDocumentService struct {
	mock.Mock
}

var _ service.DocumentService = (*MockDocumentService)(nil)

func (m *MockDocumentService) List(ctx context.Context, ownerID int64) ([]model.Document, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) Create(ctx context.Context, ownerID, typeID int64, upload service.Upload) (*model.Document, error) {
	args := m.Called(ctx, ownerID, typeID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id, requesterID int64) (*model.Document, error) {
	args := m.Called(ctx, id, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, id, requesterID int64, in service.UpdateInput) (*model.Document, error) {
	args := m.Called(ctx, id, requesterID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id, requesterID int64) error {
	args := m.Called(ctx, id, requesterID)
	return args.Error(0)
}

func (m *MockDocumentService) Open(ctx context.Context, id, requesterID int64) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, id, requesterID)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
