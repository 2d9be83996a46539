package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mydocs/internal/model"
	"mydocs/internal/service"
)

type MockTypeService struct {
	mock.Mock
}

var _ service.TypeService = (*MockTypeService)(nil)

func (m *MockTypeService) List(ctx context.Context) ([]model.Type, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Type), args.Error(1)
}

func (m *MockTypeService) Get(ctx context.Context, id int64) (*model.Type, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Type), args.Error(1)
}

func (m *MockTypeService) Create(ctx context.Context, in service.TypeInput) (*model.Type, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Type), args.Error(1)
}

func (m *MockTypeService) Update(ctx context.Context, id int64, in service.TypeInput) (*model.Type, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Type), args.Error(1)
}

func (m *MockTypeService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
