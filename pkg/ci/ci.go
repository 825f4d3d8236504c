package ci

import (
	"context"
	"strconv"
)

// CommentService lists and writes comments on a single target, either a
// commit or an issue/pull request.
type CommentService interface {
	ListComments(ctx context.Context) ([]Comment, error)
	CreateComment(ctx context.Context, body string) (*Comment, error)
	UpdateComment(ctx context.Context, id string, body string) (*Comment, error)
}

// CommentServiceProvider binds a CommentService to a commit or an issue.
type CommentServiceProvider interface {
	CommitComments(sha string) CommentService
	IssueComments(number int) CommentService
}

// OutputSetter publishes a named step output.
type OutputSetter interface {
	SetOutput(key string, value string) error
}

type Comment struct {
	Id   string
	Body *string
	Url  string
}

func (c Comment) GetIdAsInt64() (int64, error) {
	return strconv.ParseInt(c.Id, 10, 64)
}
