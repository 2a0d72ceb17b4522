// Package rest resolves the configured group over the GitLab REST API.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const perPageLimit = 100

// Resolver implements the app.GroupResolver interface for GitLab.
type Resolver struct {
	client *gitlab.Client
}

// NewResolver creates a new GitLab group resolver instance.
func NewResolver(client *gitlab.Client) *Resolver {
	return &Resolver{client: client}
}

// ResolveGroup fetches a group by its full path together with its label
// names. A missing group maps to domain.NotFoundError, a rejected token to
// domain.AuthError. Label listing failures degrade to an empty label set;
// labels only enrich category validation.
func (r *Resolver) ResolveGroup(ctx context.Context, fullPath string) (*domain.Group, error) {
	group, resp, err := r.client.Groups.GetGroup(fullPath, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", mapError("group "+fullPath, resp, err))
	}

	domainGroup := &domain.Group{
		ID:       group.ID,
		Name:     group.Name,
		FullPath: group.FullPath,
		WebURL:   group.WebURL,
	}

	labels, _, err := r.client.GroupLabels.ListGroupLabels(fullPath, &gitlab.ListGroupLabelsOptions{
		ListOptions: gitlab.ListOptions{
			PerPage: perPageLimit,
		},
	}, gitlab.WithContext(ctx))
	if err != nil {
		return domainGroup, nil
	}

	for _, label := range labels {
		domainGroup.Labels = append(domainGroup.Labels, label.Name)
	}

	return domainGroup, nil
}

// mapError converts a REST response into the domain error taxonomy.
func mapError(resource string, resp *gitlab.Response, err error) error {
	if resp == nil {
		return &domain.NetworkError{Err: err}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &domain.NotFoundError{Resource: resource}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &domain.AuthError{Reason: resp.Status}
	case http.StatusTooManyRequests:
		return &domain.RateLimitError{Reason: resp.Status}
	default:
		return err
	}
}
