package cached

import (
	"context"
	"errors"
	"testing"

	"github.com/sioXD/GitLab-TimeTool/internal/adapters/secondary/cache"
	"github.com/sioXD/GitLab-TimeTool/internal/adapters/secondary/repository/mocks"
	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveGroupCachesResult(t *testing.T) {
	resolver := &mocks.MockGroupResolver{}
	resolver.On("ResolveGroup", mock.Anything, "my-org/my-group").
		Return(&domain.Group{ID: 7, FullPath: "my-org/my-group"}, nil).
		Once()

	cachedResolver := NewCachedResolver(resolver, cache.NewInMemoryCache())

	first, err := cachedResolver.ResolveGroup(context.Background(), "my-org/my-group")
	require.NoError(t, err)

	second, err := cachedResolver.ResolveGroup(context.Background(), "my-org/my-group")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	resolver.AssertNumberOfCalls(t, "ResolveGroup", 1)
}

func TestResolveGroupErrorIsNotCached(t *testing.T) {
	resolver := &mocks.MockGroupResolver{}
	resolver.On("ResolveGroup", mock.Anything, "my-org/my-group").
		Return(nil, errors.New("boom"))

	cachedResolver := NewCachedResolver(resolver, cache.NewInMemoryCache())

	_, err := cachedResolver.ResolveGroup(context.Background(), "my-org/my-group")
	require.Error(t, err)

	_, err = cachedResolver.ResolveGroup(context.Background(), "my-org/my-group")
	require.Error(t, err)

	resolver.AssertNumberOfCalls(t, "ResolveGroup", 2)
}
