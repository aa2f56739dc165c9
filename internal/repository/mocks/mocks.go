package mocks

import (
	"context"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/stretchr/testify/mock"
)

// Gateway is a mock for viewstate.Gateway.
type Gateway[T any] struct {
	mock.Mock
}

func (m *Gateway[T]) FetchAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]T); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Gateway[T]) Create(ctx context.Context, rec T) (T, error) {
	args := m.Called(ctx, rec)
	if saved, ok := args.Get(0).(T); ok {
		return saved, args.Error(1)
	}
	return rec, args.Error(1)
}

func (m *Gateway[T]) Patch(ctx context.Context, id string, rec T) (T, error) {
	args := m.Called(ctx, id, rec)
	if saved, ok := args.Get(0).(T); ok {
		return saved, args.Error(1)
	}
	return rec, args.Error(1)
}

func (m *Gateway[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
