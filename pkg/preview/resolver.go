package preview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diggerhq/deploy-preview/pkg/vercel"
)

type DeploymentLister interface {
	ListDeployments(ctx context.Context, opts vercel.ListOptions) ([]vercel.Deployment, error)
}

// Resolution is the deployment picked by the resolver. Both fields are empty
// when no deployment matched any lookup.
type Resolution struct {
	Url    string
	Commit string
}

func (r Resolution) Found() bool {
	return r.Url != ""
}

// PreviewUrl is the value published as the preview-url output. It is built
// even for an empty resolution.
func (r Resolution) PreviewUrl() string {
	return "https://" + r.Url
}

type Resolver struct {
	Deployments DeploymentLister
}

type lookup struct {
	name string
	opts vercel.ListOptions
}

// Resolve tries the exact commit, then the branch ref, then the most recent
// deployment. The first lookup returning a deployment decides the result.
func (r Resolver) Resolve(ctx context.Context, sha string, ref string) (Resolution, error) {
	lookups := []lookup{
		{name: "commit", opts: vercel.ListOptions{CommitSha: sha, Limit: 1}},
		{name: "ref", opts: vercel.ListOptions{CommitRef: ref, Limit: 1}},
		{name: "latest", opts: vercel.ListOptions{Limit: 1}},
	}

	for _, l := range lookups {
		deployments, err := r.Deployments.ListDeployments(ctx, l.opts)
		if err != nil {
			return Resolution{}, fmt.Errorf("could not list deployments by %v: %w", l.name, err)
		}
		if len(deployments) == 0 {
			slog.Debug("No deployment found", "lookup", l.name)
			continue
		}
		d := deployments[0]
		slog.Info("Resolved deployment", "lookup", l.name, "url", d.Url, "commit", d.CommitSha())
		return Resolution{Url: d.Url, Commit: d.CommitSha()}, nil
	}

	slog.Warn("No deployment matched commit, ref or latest lookup", "sha", sha, "ref", ref)
	return Resolution{}, nil
}
