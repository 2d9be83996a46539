package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mydocs/internal/model"
	"mydocs/internal/repository"
)

type MockTypeRepository struct {
	mock.Mock
}

var _ repository.TypeRepository = (*MockTypeRepository)(nil)

func (m *MockTypeRepository) Create(ctx context.Context, t *model.Type) (*model.Type, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Type), args.Error(1)
}

func (m *MockTypeRepository) FindByID(ctx context.Context, id int64) (*model.Type, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Type), args.Error(1)
}

func (m *MockTypeRepository) List(ctx context.Context) ([]model.Type, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Type), args.Error(1)
}

func (m *MockTypeRepository) Update(ctx context.Context, t *model.Type) (*model.Type, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Type), args.Error(1)
}

func (m *MockTypeRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
