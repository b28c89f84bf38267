package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pandaschool/internal/client"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/progress"
)

// MockProgressStore is a mock implementation of client.ProgressStore
type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) Signup(ctx context.Context, email, password, parentName string) (string, error) {
	args := m.Called(ctx, email, password, parentName)
	return args.String(0), args.Error(1)
}

func (m *MockProgressStore) Login(ctx context.Context, email, password string) (*client.Credential, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Credential), args.Error(1)
}

func (m *MockProgressStore) SaveChild(ctx context.Context, token string, child models.ChildProfile) error {
	args := m.Called(ctx, token, child)
	return args.Error(0)
}

func (m *MockProgressStore) SaveProgress(ctx context.Context, token string, record models.ProgressRecord) error {
	args := m.Called(ctx, token, record)
	return args.Error(0)
}

func (m *MockProgressStore) UserData(ctx context.Context, token string) (*models.UserData, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserData), args.Error(1)
}

func (m *MockProgressStore) Summary(ctx context.Context, token string) (*progress.Summary, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.Summary), args.Error(1)
}
