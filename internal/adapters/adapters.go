package adapters

import (
	"fmt"

	do "github.com/samber/do/v2"
	graphql "github.com/shurcooL/graphql"
	"github.com/sioXD/GitLab-TimeTool/internal/adapters/primary/cli"
	httpadapter "github.com/sioXD/GitLab-TimeTool/internal/adapters/primary/http"
	"github.com/sioXD/GitLab-TimeTool/internal/adapters/secondary/cache"
	"github.com/sioXD/GitLab-TimeTool/internal/adapters/secondary/repository/cached"
	gitlabrepo "github.com/sioXD/GitLab-TimeTool/internal/adapters/secondary/repository/gitlab"
	"github.com/sioXD/GitLab-TimeTool/internal/adapters/secondary/repository/rest"
	"github.com/sioXD/GitLab-TimeTool/internal/config"
	"github.com/sioXD/GitLab-TimeTool/internal/core/app"
	"github.com/spf13/cobra"
	glclient "gitlab.com/gitlab-org/api/client-go"
)

var PrimaryPackage = do.Package(
	do.Lazy[*cobra.Command](cli.Command),
	do.Lazy[*httpadapter.Server](NewHTTPServer),
)

var SecondaryPackage = do.Package(
	do.Lazy[*glclient.Client](NewGitLabClient),
	do.Lazy[*graphql.Client](NewGraphQLClient),
	do.Lazy[app.Repository](NewRepository),
	do.Lazy[cache.Cache](NewCache),
	do.Lazy[app.GroupResolver](NewGroupResolver),
)

// NewGitLabClient creates a new GitLab REST client.
func NewGitLabClient(i do.Injector) (*glclient.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	client, err := glclient.NewClient(cfg.Token, glclient.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return client, nil
}

// NewGraphQLClient creates a new GitLab GraphQL client with token auth and
// status code mapping built into the transport.
func NewGraphQLClient(i do.Injector) (*graphql.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return graphql.NewClient(
		gitlabrepo.GraphQLEndpoint(cfg.BaseURL),
		gitlabrepo.NewHTTPClient(cfg.Token),
	), nil
}

// NewRepository creates a repository adapter that implements app.Repository.
func NewRepository(i do.Injector) (app.Repository, error) {
	client := do.MustInvoke[*graphql.Client](i)

	return gitlabrepo.NewRepository(client), nil
}

// NewCache creates a new cache instance.
func NewCache(_ do.Injector) (cache.Cache, error) {
	return cache.NewInMemoryCache(), nil
}

// NewGroupResolver creates a group resolver that implements app.GroupResolver.
// It wraps the REST resolver with a cached resolver so the configured group
// is fetched once per process.
func NewGroupResolver(i do.Injector) (app.GroupResolver, error) {
	client := do.MustInvoke[*glclient.Client](i)
	cacheInstance := do.MustInvoke[cache.Cache](i)

	return cached.NewCachedResolver(rest.NewResolver(client), cacheInstance), nil
}

// NewHTTPServer creates a new HTTP server.
func NewHTTPServer(i do.Injector) (*httpadapter.Server, error) {
	appInstance := do.MustInvoke[*app.App](i)
	cfg := do.MustInvoke[*config.Config](i)

	return httpadapter.NewServer(cfg.ListenAddress, appInstance, cfg.RepositoryName), nil
}
