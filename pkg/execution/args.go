package execution

import (
	"fmt"

	"github.com/diggerhq/deploy-preview/pkg/config"
	"github.com/google/shlex"
)

// BuildDeployArgs assembles the arguments passed to the deployment CLI: the
// user supplied arguments, authentication, scope and the metadata tags the
// provider API is later queried by.
func BuildDeployArgs(cfg *config.DeployConfig, runCtx *config.RunContext, commitMessage string) ([]string, error) {
	userArgs, err := shlex.Split(cfg.CliArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to split cli arguments %q: %w", cfg.CliArgs, err)
	}

	args := append([]string{}, userArgs...)
	args = append(args, "-t", cfg.ProviderToken)
	if cfg.TeamId != "" {
		args = append(args, "--scope", cfg.TeamId)
	}

	meta := []struct {
		key   string
		value string
	}{
		{"githubCommitSha", runCtx.Sha},
		{"githubCommitAuthorName", runCtx.Actor},
		{"githubCommitAuthorLogin", runCtx.Actor},
		{"githubDeployment", "1"},
		{"githubOrg", runCtx.RepoOwner},
		{"githubRepo", runCtx.RepoName},
		{"githubCommitOrg", runCtx.RepoOwner},
		{"githubCommitRepo", runCtx.RepoName},
		{"githubCommitMessage", commitMessage},
	}
	for _, m := range meta {
		args = append(args, "-m", fmt.Sprintf("%s=%s", m.key, m.value))
	}
	return args, nil
}
