package cache

import (
	"sync"

	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
)

// InMemoryCache is an in-memory thread-safe cache implementation for groups.
type InMemoryCache struct {
	byPath sync.Map // map[string]*domain.Group
}

// NewInMemoryCache creates a new in-memory cache instance.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		byPath: sync.Map{},
	}
}

// GetGroup retrieves a group by its full path from the cache.
func (c *InMemoryCache) GetGroup(fullPath string) (*domain.Group, bool) {
	if cached, ok := c.byPath.Load(fullPath); ok {
		if group, ok := cached.(*domain.Group); ok {
			return group, true
		}
	}

	return nil, false
}

// StoreGroup stores a group in the cache, indexed by its full path.
func (c *InMemoryCache) StoreGroup(group *domain.Group) {
	c.byPath.Store(group.FullPath, group)
}
