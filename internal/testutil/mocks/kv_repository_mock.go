package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockKVRepository is a mock implementation of repository.KVRepository
type MockKVRepository struct {
	mock.Mock
}

func (m *MockKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKVRepository) Set(ctx context.Context, key string, value []byte, at time.Time) error {
	args := m.Called(ctx, key, value, at)
	return args.Error(0)
}

func (m *MockKVRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
