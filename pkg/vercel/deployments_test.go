package vercel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDeploymentsQueryAndAuth(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"deployments":[{"uid":"dpl_1","url":"foo.example.com","meta":{"commit":"abc123"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "zeit-secret", "team_123")
	deployments, err := client.ListDeployments(context.Background(), ListOptions{CommitSha: "abc123", Limit: 1})
	require.NoError(t, err)

	assert.Equal(t, "/v4/now/deployments", gotPath)
	assert.Equal(t, "Bearer zeit-secret", gotAuth)
	assert.Equal(t, "team_123", gotQuery.Get("teamId"))
	assert.Equal(t, "abc123", gotQuery.Get("meta-githubCommitSha"))
	assert.Equal(t, "1", gotQuery.Get("limit"))
	assert.False(t, gotQuery.Has("meta-githubCommitRef"))

	require.Len(t, deployments, 1)
	assert.Equal(t, "foo.example.com", deployments[0].Url)
	assert.Equal(t, "abc123", deployments[0].CommitSha())
}

func TestListDeploymentsOmitsEmptyTeam(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"deployments":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "zeit-secret", "")
	deployments, err := client.ListDeployments(context.Background(), ListOptions{CommitRef: "refs/heads/main", Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, deployments)
	assert.False(t, gotQuery.Has("teamId"))
	assert.Equal(t, "refs/heads/main", gotQuery.Get("meta-githubCommitRef"))
}

func TestListDeploymentsUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"forbidden"}}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "bad", "").ListDeployments(context.Background(), ListOptions{Limit: 1})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "forbidden")
}

func TestListDeploymentsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "zeit-secret", "").ListDeployments(context.Background(), ListOptions{Limit: 1})
	var malformed *MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
}

func TestDeploymentCommitShaFallsBackToGithubMeta(t *testing.T) {
	d := Deployment{Meta: DeploymentMeta{GithubCommitSha: "deadbeef"}}
	assert.Equal(t, "deadbeef", d.CommitSha())
}
