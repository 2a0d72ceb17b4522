package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shurcooL/graphql"
	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T, handler http.HandlerFunc) *Repository {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := graphql.NewClient(server.URL, NewHTTPClient("test-token"))

	return NewRepository(client)
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

func TestGetEpic(t *testing.T) {
	repo := setupRepository(t, jsonHandler(`{
		"data": {
			"group": {
				"epic": {
					"id": "gid://gitlab/Epic/1",
					"iid": "1",
					"title": "Root Epic",
					"createdAt": "2024-01-01T00:00:00Z"
				}
			}
		}
	}`))

	epic, err := repo.GetEpic(context.Background(), "my-org/my-group", 1)
	require.NoError(t, err)

	assert.Equal(t, domain.KindEpic, epic.Kind)
	assert.Equal(t, "gid://gitlab/Epic/1", epic.ID)
	assert.Equal(t, 1, epic.IID)
	assert.Equal(t, "Root Epic", epic.Title)
	assert.Equal(t, 2024, epic.CreatedAt.Year())
}

func TestGetEpicNotFound(t *testing.T) {
	repo := setupRepository(t, jsonHandler(`{
		"data": {
			"group": {
				"epic": null
			}
		}
	}`))

	_, err := repo.GetEpic(context.Background(), "my-org/my-group", 99)
	require.Error(t, err)

	var notFoundErr *domain.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
}

func TestListEpicIssuesPagination(t *testing.T) {
	var requests int32

	pages := []string{
		`{
			"data": {
				"group": {
					"epic": {
						"issues": {
							"pageInfo": {"hasNextPage": true, "endCursor": "cursor-1"},
							"nodes": [{
								"id": "gid://gitlab/Issue/100",
								"iid": "10",
								"title": "First Issue",
								"createdAt": "2024-01-01T10:00:00Z",
								"timeEstimate": 7200,
								"totalTimeSpent": 5400,
								"labels": {"nodes": [{"title": "Entwurf"}]},
								"timelogs": {"nodes": [{
									"timeSpent": 3600,
									"spentAt": "2024-01-05T12:00:00Z",
									"user": {"name": "Alice", "username": "alice"}
								}]}
							}]
						}
					}
				}
			}
		}`,
		`{
			"data": {
				"group": {
					"epic": {
						"issues": {
							"pageInfo": {"hasNextPage": false, "endCursor": ""},
							"nodes": [{
								"id": "gid://gitlab/Issue/101",
								"iid": "11",
								"title": "Second Issue",
								"createdAt": "2024-01-02T10:00:00Z",
								"timeEstimate": 0,
								"totalTimeSpent": 0,
								"labels": {"nodes": []},
								"timelogs": {"nodes": [{
									"timeSpent": 900,
									"spentAt": "2024-01-06T12:00:00Z",
									"user": {"name": "", "username": "bob"}
								}]}
							}]
						}
					}
				}
			}
		}`,
	}

	repo := setupRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		page := atomic.AddInt32(&requests, 1) - 1
		require.Less(t, int(page), len(pages))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, pages[page])
	})

	issues, err := repo.ListEpicIssues(context.Background(), "my-org/my-group", 1)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Equal(t, 10, first.IID)
	assert.Equal(t, "First Issue", first.Title)
	assert.Equal(t, []string{"Entwurf"}, first.Labels)
	assert.Equal(t, int64(7200), first.EstimateSecs)
	assert.Equal(t, int64(5400), first.SpentSecs)
	require.Len(t, first.Timelogs, 1)
	assert.Equal(t, "Alice", first.Timelogs[0].User)
	assert.Equal(t, int64(3600), first.Timelogs[0].Seconds)

	// Falls back to the username when no display name is set.
	second := issues[1]
	require.Len(t, second.Timelogs, 1)
	assert.Equal(t, "bob", second.Timelogs[0].User)
}

func TestListChildEpicIIDs(t *testing.T) {
	repo := setupRepository(t, jsonHandler(`{
		"data": {
			"group": {
				"epic": {
					"children": {
						"pageInfo": {"hasNextPage": false, "endCursor": ""},
						"nodes": [{"iid": "2"}, {"iid": "3"}]
					}
				}
			}
		}
	}`))

	iids, err := repo.ListChildEpicIIDs(context.Background(), "my-org/my-group", 1)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, iids)
}

func TestGetEpicUnauthorized(t *testing.T) {
	repo := setupRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := repo.GetEpic(context.Background(), "my-org/my-group", 1)
	require.Error(t, err)

	var authErr *domain.AuthError
	assert.True(t, errors.As(err, &authErr))
}

func TestGetEpicRateLimited(t *testing.T) {
	repo := setupRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := repo.GetEpic(context.Background(), "my-org/my-group", 1)
	require.Error(t, err)

	var rateErr *domain.RateLimitError
	assert.True(t, errors.As(err, &rateErr))
}

func TestGetEpicNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := graphql.NewClient(url, NewHTTPClient("test-token"))
	repo := NewRepository(client)

	_, err := repo.GetEpic(context.Background(), "my-org/my-group", 1)
	require.Error(t, err)

	var netErr *domain.NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestGraphQLEndpoint(t *testing.T) {
	assert.Equal(t, "https://gitlab.com/api/graphql", GraphQLEndpoint("https://gitlab.com"))
	assert.Equal(t, "https://gitlab.example.com/api/graphql", GraphQLEndpoint("https://gitlab.example.com"))
}

func TestSendsBearerToken(t *testing.T) {
	var authHeader string

	repo := setupRepository(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": {"group": {"epic": {"id": "gid://gitlab/Epic/1", "iid": "1", "title": "x", "createdAt": "2024-01-01T00:00:00Z"}}}}`)
	})

	_, err := repo.GetEpic(context.Background(), "my-org/my-group", 1)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", authHeader)
}
