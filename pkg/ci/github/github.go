package github

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/diggerhq/deploy-preview/pkg/ci"
	"github.com/google/go-github/v61/github"
	"github.com/pkg/errors"
)

type GithubServiceProvider interface {
	NewService(ghToken string, repoName string, owner string) (GithubService, error)
}

type GithubServiceProviderBasic struct{}

func (_ GithubServiceProviderBasic) NewService(ghToken string, repoName string, owner string) (GithubService, error) {
	client := github.NewClient(nil)
	if ghToken != "" {
		client = client.WithAuthToken(ghToken)
	}

	return GithubService{
		Client:   client,
		RepoName: repoName,
		Owner:    owner,
	}, nil
}

type GithubService struct {
	Client   *github.Client
	RepoName string
	Owner    string
}

func (svc GithubService) CommitComments(sha string) ci.CommentService {
	return commitComments{svc: svc, sha: sha}
}

func (svc GithubService) IssueComments(number int) ci.CommentService {
	return issueComments{svc: svc, number: number}
}

type commitComments struct {
	svc GithubService
	sha string
}

func (c commitComments) ListComments(ctx context.Context) ([]ci.Comment, error) {
	var comments []ci.Comment
	opts := &github.ListOptions{PerPage: 100}
	for {
		page, resp, err := c.svc.Client.Repositories.ListCommitComments(ctx, c.svc.Owner, c.svc.RepoName, c.sha, opts)
		if err != nil {
			slog.Error("Failed to list commit comments", "sha", c.sha, "error", err)
			return nil, errors.Wrapf(err, "could not list comments for commit %v", c.sha)
		}
		for _, comment := range page {
			comments = append(comments, ci.Comment{
				Id:   strconv.FormatInt(comment.GetID(), 10),
				Body: comment.Body,
				Url:  comment.GetHTMLURL(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return comments, nil
}

func (c commitComments) CreateComment(ctx context.Context, body string) (*ci.Comment, error) {
	comment, _, err := c.svc.Client.Repositories.CreateComment(ctx, c.svc.Owner, c.svc.RepoName, c.sha, &github.RepositoryComment{Body: &body})
	if err != nil {
		return nil, errors.Wrapf(err, "could not publish comment to commit %v", c.sha)
	}
	return &ci.Comment{
		Id:   strconv.FormatInt(comment.GetID(), 10),
		Body: comment.Body,
		Url:  comment.GetHTMLURL(),
	}, nil
}

func (c commitComments) UpdateComment(ctx context.Context, id string, body string) (*ci.Comment, error) {
	commentId, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "could not convert id %v to i64", id)
	}
	comment, _, err := c.svc.Client.Repositories.UpdateComment(ctx, c.svc.Owner, c.svc.RepoName, commentId, &github.RepositoryComment{Body: &body})
	if err != nil {
		return nil, errors.Wrapf(err, "could not update commit comment %v", id)
	}
	return &ci.Comment{
		Id:   strconv.FormatInt(comment.GetID(), 10),
		Body: comment.Body,
		Url:  comment.GetHTMLURL(),
	}, nil
}

type issueComments struct {
	svc    GithubService
	number int
}

func (c issueComments) ListComments(ctx context.Context) ([]ci.Comment, error) {
	var comments []ci.Comment
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		page, resp, err := c.svc.Client.Issues.ListComments(ctx, c.svc.Owner, c.svc.RepoName, c.number, opts)
		if err != nil {
			slog.Error("Failed to list issue comments", "number", c.number, "error", err)
			return nil, errors.Wrapf(err, "could not list comments for PR %v", c.number)
		}
		for _, comment := range page {
			comments = append(comments, ci.Comment{
				Id:   strconv.FormatInt(comment.GetID(), 10),
				Body: comment.Body,
				Url:  comment.GetHTMLURL(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return comments, nil
}

func (c issueComments) CreateComment(ctx context.Context, body string) (*ci.Comment, error) {
	comment, _, err := c.svc.Client.Issues.CreateComment(ctx, c.svc.Owner, c.svc.RepoName, c.number, &github.IssueComment{Body: &body})
	if err != nil {
		return nil, errors.Wrapf(err, "could not publish comment to PR %v", c.number)
	}
	return &ci.Comment{
		Id:   strconv.FormatInt(comment.GetID(), 10),
		Body: comment.Body,
		Url:  comment.GetHTMLURL(),
	}, nil
}

func (c issueComments) UpdateComment(ctx context.Context, id string, body string) (*ci.Comment, error) {
	commentId, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "could not convert id %v to i64", id)
	}
	comment, _, err := c.svc.Client.Issues.EditComment(ctx, c.svc.Owner, c.svc.RepoName, commentId, &github.IssueComment{Body: &body})
	if err != nil {
		return nil, errors.Wrapf(err, "could not edit comment %v on PR %v", id, c.number)
	}
	return &ci.Comment{
		Id:   strconv.FormatInt(comment.GetID(), 10),
		Body: comment.Body,
		Url:  comment.GetHTMLURL(),
	}, nil
}
