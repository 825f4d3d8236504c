package preview

import (
	"context"

	"github.com/diggerhq/deploy-preview/pkg/vercel"
)

// MockDeploymentLister answers each lookup from Responses, keyed by the
// lookup kind ("commit", "ref" or "latest"), and records the queries made.
type MockDeploymentLister struct {
	Responses map[string][]vercel.Deployment
	Err       error
	Queries   []vercel.ListOptions
}

func (m *MockDeploymentLister) ListDeployments(ctx context.Context, opts vercel.ListOptions) ([]vercel.Deployment, error) {
	m.Queries = append(m.Queries, opts)
	if m.Err != nil {
		return nil, m.Err
	}
	switch {
	case opts.CommitSha != "":
		return m.Responses["commit"], nil
	case opts.CommitRef != "":
		return m.Responses["ref"], nil
	default:
		return m.Responses["latest"], nil
	}
}

type MockDeployer struct {
	Args [][]string
	Err  error
}

func (m *MockDeployer) Deploy(ctx context.Context, args []string) error {
	m.Args = append(m.Args, args)
	return m.Err
}
