package github

import (
	"context"
	"fmt"
	"strconv"

	"github.com/diggerhq/deploy-preview/pkg/ci"
)

type MockCall struct {
	Method string
	Target string
	Id     string
	Body   string
}

// MockCiService keeps comments in memory, keyed by "commit/<sha>" or
// "issue/<number>", and records every call made through it.
type MockCiService struct {
	CommentsPerTarget map[string][]*ci.Comment
	Calls             []MockCall
	ListErr           error
}

func NewMockCiService() *MockCiService {
	return &MockCiService{CommentsPerTarget: map[string][]*ci.Comment{}}
}

func (m *MockCiService) CommitComments(sha string) ci.CommentService {
	return mockTarget{mock: m, target: "commit/" + sha}
}

func (m *MockCiService) IssueComments(number int) ci.CommentService {
	return mockTarget{mock: m, target: "issue/" + strconv.Itoa(number)}
}

// AddComment seeds an existing comment on target.
func (m *MockCiService) AddComment(target string, body string) *ci.Comment {
	comment := &ci.Comment{Id: strconv.Itoa(m.latestId() + 1), Body: &body}
	m.CommentsPerTarget[target] = append(m.CommentsPerTarget[target], comment)
	return comment
}

func (m *MockCiService) CallsTo(method string) []MockCall {
	var calls []MockCall
	for _, c := range m.Calls {
		if c.Method == method {
			calls = append(calls, c)
		}
	}
	return calls
}

func (m *MockCiService) latestId() int {
	latestId := 0
	for _, comments := range m.CommentsPerTarget {
		for _, c := range comments {
			id, _ := strconv.Atoi(c.Id)
			if id > latestId {
				latestId = id
			}
		}
	}
	return latestId
}

type mockTarget struct {
	mock   *MockCiService
	target string
}

func (t mockTarget) ListComments(ctx context.Context) ([]ci.Comment, error) {
	t.mock.Calls = append(t.mock.Calls, MockCall{Method: "ListComments", Target: t.target})
	if t.mock.ListErr != nil {
		return nil, t.mock.ListErr
	}
	comments := []ci.Comment{}
	for _, c := range t.mock.CommentsPerTarget[t.target] {
		comments = append(comments, *c)
	}
	return comments, nil
}

func (t mockTarget) CreateComment(ctx context.Context, body string) (*ci.Comment, error) {
	t.mock.Calls = append(t.mock.Calls, MockCall{Method: "CreateComment", Target: t.target, Body: body})
	comment := t.mock.AddComment(t.target, body)
	return comment, nil
}

func (t mockTarget) UpdateComment(ctx context.Context, id string, body string) (*ci.Comment, error) {
	t.mock.Calls = append(t.mock.Calls, MockCall{Method: "UpdateComment", Target: t.target, Id: id, Body: body})
	for _, c := range t.mock.CommentsPerTarget[t.target] {
		if c.Id == id {
			c.Body = &body
			return c, nil
		}
	}
	return nil, fmt.Errorf("comment %v not found on %v", id, t.target)
}

type MockOutput struct {
	Outputs map[string]string
}

func (o *MockOutput) SetOutput(key string, value string) error {
	if o.Outputs == nil {
		o.Outputs = map[string]string{}
	}
	o.Outputs[key] = value
	return nil
}
