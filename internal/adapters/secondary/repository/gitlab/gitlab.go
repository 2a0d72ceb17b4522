// Package gitlab implements the app.Repository port against the GitLab
// GraphQL API using cursor-based connection pagination.
package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shurcooL/graphql"
	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
	"golang.org/x/oauth2"
)

const requestTimeout = 30 * time.Second

// Repository implements the app.Repository interface for GitLab.
type Repository struct {
	client *graphql.Client
}

// NewRepository creates a new GitLab repository instance.
func NewRepository(client *graphql.Client) *Repository {
	return &Repository{client: client}
}

// NewHTTPClient builds an HTTP client that injects the bearer token and
// converts authentication and throttling responses into typed domain errors
// before the GraphQL layer parses the body. Failures are never retried.
func NewHTTPClient(token string) *http.Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	return &http.Client{
		Timeout: requestTimeout,
		Transport: &statusTransport{
			next: &oauth2.Transport{Source: source},
		},
	}
}

// GraphQLEndpoint returns the GraphQL URL for a GitLab base URL.
func GraphQLEndpoint(baseURL string) string {
	return baseURL + "/api/graphql"
}

// statusTransport maps HTTP statuses onto the domain error taxonomy.
type statusTransport struct {
	next http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		resp.Body.Close()

		return nil, &domain.AuthError{Reason: resp.Status}
	case http.StatusTooManyRequests:
		resp.Body.Close()

		return nil, &domain.RateLimitError{Reason: resp.Status}
	}

	return resp, nil
}

type pageInfo struct {
	HasNextPage graphql.Boolean
	EndCursor   graphql.String
}

type issueNode struct {
	ID             graphql.String `graphql:"id"`
	IID            graphql.String `graphql:"iid"`
	Title          graphql.String
	CreatedAt      time.Time
	TimeEstimate   graphql.Int
	TotalTimeSpent graphql.Int
	Labels         struct {
		Nodes []struct {
			Title graphql.String
		}
	} `graphql:"labels(first: 100)"`
	Timelogs struct {
		Nodes []struct {
			TimeSpent graphql.Int
			SpentAt   time.Time
			User      struct {
				Name     graphql.String
				Username graphql.String
			}
		}
	} `graphql:"timelogs(first: 100)"`
}

// GetEpic fetches the identity of a single epic. It fails with
// domain.NotFoundError when the group or the epic does not resolve.
func (r *Repository) GetEpic(ctx context.Context, groupPath string, epicIID int) (*domain.WorkItem, error) {
	var q struct {
		Group struct {
			Epic struct {
				ID        graphql.String `graphql:"id"`
				IID       graphql.String `graphql:"iid"`
				Title     graphql.String
				CreatedAt time.Time
			} `graphql:"epic(iid: $epicIid)"`
		} `graphql:"group(fullPath: $fullPath)"`
	}

	variables := map[string]interface{}{
		"fullPath": graphql.ID(groupPath),
		"epicIid":  graphql.ID(strconv.Itoa(epicIID)),
	}

	if err := r.client.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to query epic %d: %w", epicIID, classifyError(err))
	}

	if q.Group.Epic.ID == "" {
		return nil, &domain.NotFoundError{
			Resource: fmt.Sprintf("epic %d in group %s", epicIID, groupPath),
		}
	}

	return &domain.WorkItem{
		Kind:      domain.KindEpic,
		ID:        string(q.Group.Epic.ID),
		IID:       epicIID,
		Title:     string(q.Group.Epic.Title),
		CreatedAt: q.Group.Epic.CreatedAt,
	}, nil
}

// ListEpicIssues fetches all issues directly attached to an epic, walking
// the connection cursor until the last page.
func (r *Repository) ListEpicIssues(ctx context.Context, groupPath string, epicIID int) ([]*domain.WorkItem, error) {
	var q struct {
		Group struct {
			Epic struct {
				Issues struct {
					PageInfo pageInfo
					Nodes    []issueNode
				} `graphql:"issues(first: 100, after: $cursor)"`
			} `graphql:"epic(iid: $epicIid)"`
		} `graphql:"group(fullPath: $fullPath)"`
	}

	variables := map[string]interface{}{
		"fullPath": graphql.ID(groupPath),
		"epicIid":  graphql.ID(strconv.Itoa(epicIID)),
		"cursor":   (*graphql.String)(nil),
	}

	var issues []*domain.WorkItem
	for {
		if err := r.client.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to query issues of epic %d: %w", epicIID, classifyError(err))
		}

		for _, node := range q.Group.Epic.Issues.Nodes {
			issue, err := convertIssue(node)
			if err != nil {
				return nil, fmt.Errorf("failed to convert issue of epic %d: %w", epicIID, err)
			}
			issues = append(issues, issue)
		}

		if !q.Group.Epic.Issues.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = graphql.NewString(q.Group.Epic.Issues.PageInfo.EndCursor)
	}

	return issues, nil
}

// ListChildEpicIIDs fetches the IIDs of all epics nested under an epic.
func (r *Repository) ListChildEpicIIDs(ctx context.Context, groupPath string, epicIID int) ([]int, error) {
	var q struct {
		Group struct {
			Epic struct {
				Children struct {
					PageInfo pageInfo
					Nodes    []struct {
						IID graphql.String `graphql:"iid"`
					}
				} `graphql:"children(first: 100, after: $cursor)"`
			} `graphql:"epic(iid: $epicIid)"`
		} `graphql:"group(fullPath: $fullPath)"`
	}

	variables := map[string]interface{}{
		"fullPath": graphql.ID(groupPath),
		"epicIid":  graphql.ID(strconv.Itoa(epicIID)),
		"cursor":   (*graphql.String)(nil),
	}

	var iids []int
	for {
		if err := r.client.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to query children of epic %d: %w", epicIID, classifyError(err))
		}

		for _, node := range q.Group.Epic.Children.Nodes {
			iid, err := strconv.Atoi(string(node.IID))
			if err != nil {
				return nil, fmt.Errorf("failed to parse child epic iid %q: %w", node.IID, err)
			}
			iids = append(iids, iid)
		}

		if !q.Group.Epic.Children.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = graphql.NewString(q.Group.Epic.Children.PageInfo.EndCursor)
	}

	return iids, nil
}

func convertIssue(node issueNode) (*domain.WorkItem, error) {
	iid, err := strconv.Atoi(string(node.IID))
	if err != nil {
		return nil, fmt.Errorf("failed to parse issue iid %q: %w", node.IID, err)
	}

	issue := &domain.WorkItem{
		Kind:         domain.KindIssue,
		ID:           string(node.ID),
		IID:          iid,
		Title:        string(node.Title),
		CreatedAt:    node.CreatedAt,
		EstimateSecs: int64(node.TimeEstimate),
		SpentSecs:    int64(node.TotalTimeSpent),
	}

	for _, label := range node.Labels.Nodes {
		issue.Labels = append(issue.Labels, string(label.Title))
	}

	for _, log := range node.Timelogs.Nodes {
		// Prefer the display name, as the original report columns do.
		user := string(log.User.Name)
		if user == "" {
			user = string(log.User.Username)
		}
		issue.Timelogs = append(issue.Timelogs, domain.Timelog{
			SpentAt: log.SpentAt,
			Seconds: int64(log.TimeSpent),
			User:    user,
		})
	}

	return issue, nil
}

// classifyError keeps typed domain errors intact and wraps transport-level
// failures as NetworkError.
func classifyError(err error) error {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return authErr
	}

	var rateErr *domain.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &domain.NetworkError{Err: err}
	}

	return err
}
