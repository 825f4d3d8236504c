package preview

import (
	"context"
	"log/slog"

	"github.com/diggerhq/deploy-preview/pkg/ci"
	"github.com/diggerhq/deploy-preview/pkg/config"
	"github.com/diggerhq/deploy-preview/pkg/execution"
	"github.com/pkg/errors"
)

const PreviewUrlOutput = "preview-url"

type Runner struct {
	Config   *config.DeployConfig
	Context  *config.RunContext
	Deployer execution.Deployer
	// CommitMessage reads the message of the last commit in a directory.
	// Defaults to execution.LastCommitMessage.
	CommitMessage func(dir string) (string, error)
	Resolver      Resolver
	Comments      ci.CommentServiceProvider
	Output        ci.OutputSetter
}

// Run deploys, then reports the preview on the pull request when the run was
// triggered for one, or on the commit for push events.
func (r Runner) Run(ctx context.Context) error {
	slog.Debug("GitHub deployment flag", "githubDeployment", r.Config.GithubDeployment)

	if err := r.deploy(ctx); err != nil {
		return err
	}

	switch {
	case r.Context.IssueNumber != nil:
		slog.Info("Reporting preview on pull request", "number", *r.Context.IssueNumber)
		return r.notify(ctx, r.Comments.IssueComments(*r.Context.IssueNumber))
	case r.Context.IsPush():
		slog.Info("Reporting preview on commit", "sha", r.Context.Sha)
		return r.notify(ctx, r.Comments.CommitComments(r.Context.Sha))
	default:
		slog.Info("Event is neither a pull request nor a push, not commenting", "eventName", r.Context.EventName)
		return nil
	}
}

func (r Runner) deploy(ctx context.Context) error {
	commitMessage := r.CommitMessage
	if commitMessage == nil {
		commitMessage = execution.LastCommitMessage
	}
	message, err := commitMessage(r.Config.WorkingDirectory)
	if err != nil {
		return errors.Wrap(err, "could not read last commit message")
	}

	args, err := execution.BuildDeployArgs(r.Config, r.Context, message)
	if err != nil {
		return err
	}
	return r.Deployer.Deploy(ctx, args)
}

func (r Runner) notify(ctx context.Context, svc ci.CommentService) error {
	comments, err := svc.ListComments(ctx)
	if err != nil {
		return err
	}

	resolution, err := r.Resolver.Resolve(ctx, r.Context.Sha, r.Context.Ref)
	if err != nil {
		return err
	}

	comment, err := UpsertComment(ctx, svc, comments, FormatBody(resolution.Commit, resolution.Url))
	if err != nil {
		return err
	}
	slog.Info("Preview comment published", "commentId", comment.Id, "url", comment.Url)

	return r.Output.SetOutput(PreviewUrlOutput, resolution.PreviewUrl())
}
