package cache

import "github.com/sioXD/GitLab-TimeTool/internal/core/domain"

// Cache defines the interface for group caching operations. Only the
// resolved group is cached for the process lifetime; work item data is
// always fetched fresh per request.
type Cache interface {
	// GetGroup retrieves a group by its full path from the cache.
	// Returns the group and true if found, nil and false otherwise.
	GetGroup(fullPath string) (*domain.Group, bool)

	// StoreGroup stores a group in the cache, indexed by its full path.
	StoreGroup(group *domain.Group)
}
