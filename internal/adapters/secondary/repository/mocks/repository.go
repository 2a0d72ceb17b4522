package mocks

import (
	"context"

	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of app.Repository.
type MockRepository struct {
	mock.Mock
}

// GetEpic mocks the GetEpic method.
func (m *MockRepository) GetEpic(ctx context.Context, groupPath string, epicIID int) (*domain.WorkItem, error) {
	args := m.Called(ctx, groupPath, epicIID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.WorkItem), args.Error(1)
}

// ListEpicIssues mocks the ListEpicIssues method.
func (m *MockRepository) ListEpicIssues(ctx context.Context, groupPath string, epicIID int) ([]*domain.WorkItem, error) {
	args := m.Called(ctx, groupPath, epicIID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.WorkItem), args.Error(1)
}

// ListChildEpicIIDs mocks the ListChildEpicIIDs method.
func (m *MockRepository) ListChildEpicIIDs(ctx context.Context, groupPath string, epicIID int) ([]int, error) {
	args := m.Called(ctx, groupPath, epicIID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]int), args.Error(1)
}

// MockGroupResolver is a mock implementation of app.GroupResolver.
type MockGroupResolver struct {
	mock.Mock
}

// ResolveGroup mocks the ResolveGroup method.
func (m *MockGroupResolver) ResolveGroup(ctx context.Context, fullPath string) (*domain.Group, error) {
	args := m.Called(ctx, fullPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Group), args.Error(1)
}
