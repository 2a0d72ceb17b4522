package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/sioXD/GitLab-TimeTool/internal/config"
	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// Repository defines the interface for fetching work items from GitLab (port).
type Repository interface {
	GetEpic(ctx context.Context, groupPath string, epicIID int) (*domain.WorkItem, error)
	ListEpicIssues(ctx context.Context, groupPath string, epicIID int) ([]*domain.WorkItem, error)
	ListChildEpicIIDs(ctx context.Context, groupPath string, epicIID int) ([]int, error)
}

// GroupResolver defines the interface for resolving the configured group (port).
type GroupResolver interface {
	ResolveGroup(ctx context.Context, fullPath string) (*domain.Group, error)
}

// App represents the core application with all business logic.
type App struct {
	repo           Repository
	resolver       GroupResolver
	groupPath      string
	rootEpicIID    int
	repositoryName string
	targets        []string
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, repo Repository, resolver GroupResolver) (*App, error) {
	return &App{
		repo:           repo,
		resolver:       resolver,
		groupPath:      cfg.GroupFullPath,
		rootEpicIID:    cfg.RootEpicIID,
		repositoryName: cfg.RepositoryName,
		targets:        cfg.TargetCategories,
	}, nil
}

// Targets returns the configured target category labels, in order.
func (a *App) Targets() []string {
	return a.targets
}

// seenItems guards the tree build against duplicates and cycles. GitLab
// guarantees a DAG, but an item reachable through two parents or repeated
// across pagination pages must still be attached exactly once.
type seenItems struct {
	epics  map[int]struct{}
	issues map[int]struct{}
}

// BuildTree fetches the configured root epic and all of its descendants and
// assembles the work item tree. Every build constructs a fresh tree; nothing
// is shared across requests.
func (a *App) BuildTree(ctx context.Context) (*domain.WorkItem, error) {
	if _, err := a.resolver.ResolveGroup(ctx, a.groupPath); err != nil {
		return nil, fmt.Errorf("failed to resolve group %q: %w", a.groupPath, err)
	}

	seen := &seenItems{
		epics:  map[int]struct{}{a.rootEpicIID: {}},
		issues: map[int]struct{}{},
	}

	root, err := a.buildEpic(ctx, a.rootEpicIID, seen)
	if err != nil {
		return nil, err
	}

	RollupTimes(root)

	return root, nil
}

// buildEpic fetches one epic with its issues and child epics and recurses
// into the children. Issues and child IIDs for the same epic are two
// independent paginated connections and are fetched concurrently.
func (a *App) buildEpic(ctx context.Context, epicIID int, seen *seenItems) (*domain.WorkItem, error) {
	epic, err := a.repo.GetEpic(ctx, a.groupPath, epicIID)
	if err != nil {
		return nil, fmt.Errorf("failed to get epic %d: %w", epicIID, err)
	}

	var issues []*domain.WorkItem
	var childIIDs []int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issues, err = a.repo.ListEpicIssues(gctx, a.groupPath, epicIID)

		return err
	})
	g.Go(func() error {
		var err error
		childIIDs, err = a.repo.ListChildEpicIIDs(gctx, a.groupPath, epicIID)

		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch contents of epic %d: %w", epicIID, err)
	}

	for _, issue := range issues {
		if _, ok := seen.issues[issue.IID]; ok {
			continue
		}
		seen.issues[issue.IID] = struct{}{}
		epic.AddChild(issue)
	}

	for _, childIID := range childIIDs {
		if _, ok := seen.epics[childIID]; ok {
			continue
		}
		seen.epics[childIID] = struct{}{}

		child, err := a.buildEpic(ctx, childIID, seen)
		if err != nil {
			return nil, err
		}
		epic.AddChild(child)
	}

	return epic, nil
}

// Dashboard builds a fresh tree and assembles the full dashboard payload for
// the given window.
func (a *App) Dashboard(ctx context.Context, window *domain.DateWindow) (*domain.Dashboard, error) {
	root, err := a.BuildTree(ctx)
	if err != nil {
		return nil, err
	}

	return a.DashboardFromTree(root, window), nil
}

// DashboardFromTree assembles the dashboard payload from an already built
// tree. Pure function of tree and window.
func (a *App) DashboardFromTree(root *domain.WorkItem, window *domain.DateWindow) *domain.Dashboard {
	categories := make([]string, 0, len(a.targets)+1)
	categories = append(categories, a.targets...)
	categories = append(categories, domain.CategoryUncategorized)

	return &domain.Dashboard{
		Rows:           Rows(root, window, a.targets),
		Users:          collectUsers(root),
		Categories:     categories,
		GroupPath:      a.groupPath,
		RepositoryName: a.repositoryName,
		Aggregation:    Aggregate(root, window, a.targets),
	}
}

// Categories builds a fresh tree and returns the per-category aggregation
// for the given window.
func (a *App) Categories(ctx context.Context, window *domain.DateWindow) (domain.AggregationResult, error) {
	root, err := a.BuildTree(ctx)
	if err != nil {
		return domain.AggregationResult{}, err
	}

	return Aggregate(root, window, a.targets), nil
}

// collectUsers gathers the sorted set of users appearing in any timelog of
// the tree, regardless of window.
func collectUsers(root *domain.WorkItem) []string {
	set := make(map[string]struct{})

	var walk func(item *domain.WorkItem)
	walk = func(item *domain.WorkItem) {
		if item == nil {
			return
		}
		for _, log := range item.Timelogs {
			if log.User != "" {
				set[log.User] = struct{}{}
			}
		}
		for _, child := range item.Children {
			walk(child)
		}
	}
	walk(root)

	users := make([]string, 0, len(set))
	for user := range set {
		users = append(users, user)
	}
	sort.Strings(users)

	return users
}
