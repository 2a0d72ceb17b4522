package cached

import (
	"context"
	"fmt"

	"github.com/sioXD/GitLab-TimeTool/internal/adapters/secondary/cache"
	"github.com/sioXD/GitLab-TimeTool/internal/core/app"
	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
)

// CachedResolver wraps a GroupResolver with caching functionality. The
// configured group never changes within a process, so one successful
// resolution is reused for every request.
type CachedResolver struct {
	resolver app.GroupResolver
	cache    cache.Cache
}

// NewCachedResolver creates a new cached group resolver instance.
func NewCachedResolver(resolver app.GroupResolver, cache cache.Cache) *CachedResolver {
	return &CachedResolver{
		resolver: resolver,
		cache:    cache,
	}
}

// ResolveGroup resolves a group from the cache or the underlying resolver.
func (r *CachedResolver) ResolveGroup(ctx context.Context, fullPath string) (*domain.Group, error) {
	if group, ok := r.cache.GetGroup(fullPath); ok {
		return group, nil
	}

	group, err := r.resolver.ResolveGroup(ctx, fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group: %w", err)
	}

	if group != nil {
		r.cache.StoreGroup(group)
	}

	return group, nil
}
