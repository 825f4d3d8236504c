package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v61/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, mux *http.ServeMux) GithubService {
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	baseUrl, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseUrl

	return GithubService{Client: client, Owner: "diggerhq", RepoName: "website"}
}

func readBody(t *testing.T, r *http.Request) string {
	var payload struct {
		Body string `json:"body"`
	}
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload.Body
}

func TestCommitCommentsListCreateUpdate(t *testing.T) {
	var created, updated string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/diggerhq/website/commits/abc123/comments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":1,"body":"nice","html_url":"https://github.com/c/1"},{"id":2,"body":"Deploy preview for _website_ ready!"}]`)
	})
	mux.HandleFunc("POST /repos/diggerhq/website/commits/abc123/comments", func(w http.ResponseWriter, r *http.Request) {
		created = readBody(t, r)
		fmt.Fprintf(w, `{"id":3,"body":%q}`, created)
	})
	mux.HandleFunc("PATCH /repos/diggerhq/website/comments/2", func(w http.ResponseWriter, r *http.Request) {
		updated = readBody(t, r)
		fmt.Fprintf(w, `{"id":2,"body":%q}`, updated)
	})
	svc := newTestService(t, mux).CommitComments("abc123")

	comments, err := svc.ListComments(context.Background())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "1", comments[0].Id)
	assert.Equal(t, "https://github.com/c/1", comments[0].Url)
	assert.Equal(t, "Deploy preview for _website_ ready!", *comments[1].Body)

	comment, err := svc.CreateComment(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "3", comment.Id)
	assert.Equal(t, "hello", created)

	comment, err = svc.UpdateComment(context.Background(), "2", "updated")
	require.NoError(t, err)
	assert.Equal(t, "2", comment.Id)
	assert.Equal(t, "updated", updated)
}

func TestIssueCommentsPaginates(t *testing.T) {
	var serverUrl string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/diggerhq/website/issues/11/comments", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id":7,"body":"second page"}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%srepos/diggerhq/website/issues/11/comments?page=2>; rel="next"`, serverUrl))
		fmt.Fprint(w, `[{"id":5,"body":"first page"}]`)
	})
	svc := newTestService(t, mux)
	serverUrl = svc.Client.BaseURL.String()

	comments, err := svc.IssueComments(11).ListComments(context.Background())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "5", comments[0].Id)
	assert.Equal(t, "7", comments[1].Id)
}

func TestIssueCommentsCreateAndEdit(t *testing.T) {
	var edited string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/diggerhq/website/issues/11/comments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":9,"body":%q,"html_url":"https://github.com/diggerhq/website/pull/11#issuecomment-9"}`, readBody(t, r))
	})
	mux.HandleFunc("PATCH /repos/diggerhq/website/issues/comments/9", func(w http.ResponseWriter, r *http.Request) {
		edited = readBody(t, r)
		fmt.Fprintf(w, `{"id":9,"body":%q}`, edited)
	})
	svc := newTestService(t, mux).IssueComments(11)

	comment, err := svc.CreateComment(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "9", comment.Id)
	assert.Equal(t, "https://github.com/diggerhq/website/pull/11#issuecomment-9", comment.Url)

	_, err = svc.UpdateComment(context.Background(), comment.Id, "second")
	require.NoError(t, err)
	assert.Equal(t, "second", edited)
}

func TestUpdateCommentRejectsInvalidId(t *testing.T) {
	svc := newTestService(t, http.NewServeMux())
	_, err := svc.IssueComments(11).UpdateComment(context.Background(), "not-a-number", "body")
	assert.Error(t, err)
}

func TestListCommentsApiError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/diggerhq/website/commits/abc123/comments", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	_, err := newTestService(t, mux).CommitComments("abc123").ListComments(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not list comments for commit abc123")
}
