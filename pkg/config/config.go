package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

const DefaultApiUrl = "https://api.zeit.co"

// DeployConfig holds the action inputs. GitHub Actions exposes every input
// as INPUT_<NAME> with the name upper-cased and hyphens preserved.
type DeployConfig struct {
	ProviderToken    string `env:"INPUT_ZEIT-TOKEN"`
	TeamId           string `env:"INPUT_ZEIT-TEAM-ID"`
	CliArgs          string `env:"INPUT_NOW-ARGS"`
	GithubToken      string `env:"INPUT_GITHUB-TOKEN"`
	GithubDeployment bool   `env:"INPUT_GITHUB-DEPLOYMENT"`
	WorkingDirectory string `env:"INPUT_WORKING-DIRECTORY" envDefault:"."`
	ApiUrl           string `env:"INPUT_API-URL" envDefault:"https://api.zeit.co"`
}

// RunContext describes what triggered the workflow run.
type RunContext struct {
	EventName  string `env:"GITHUB_EVENT_NAME"`
	Repository string `env:"GITHUB_REPOSITORY"`
	Sha        string `env:"GITHUB_SHA"`
	Ref        string `env:"GITHUB_REF"`
	Actor      string `env:"GITHUB_ACTOR"`
	EventPath  string `env:"GITHUB_EVENT_PATH"`

	RepoOwner   string
	RepoName    string
	IssueNumber *int
}

func (c *RunContext) IsPush() bool {
	return c.EventName == "push"
}

func LoadDeployConfig() (*DeployConfig, error) {
	var cfg DeployConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse action inputs: %w", err)
	}
	if cfg.WorkingDirectory == "" {
		cfg.WorkingDirectory = "."
	}
	if cfg.ApiUrl == "" {
		cfg.ApiUrl = DefaultApiUrl
	}
	slog.Debug("Parsed action inputs",
		"teamId", cfg.TeamId,
		"cliArgs", cfg.CliArgs,
		"githubDeployment", cfg.GithubDeployment,
		"workingDirectory", cfg.WorkingDirectory,
	)
	return &cfg, nil
}

func LoadRunContext() (*RunContext, error) {
	var runCtx RunContext
	if err := env.Parse(&runCtx); err != nil {
		return nil, fmt.Errorf("could not parse github context: %w", err)
	}
	runCtx.RepoOwner, runCtx.RepoName = ParseRepoNamespace(runCtx.Repository)

	if runCtx.EventPath != "" {
		number, err := issueNumberFromEventFile(runCtx.EventPath)
		if err != nil {
			return nil, err
		}
		runCtx.IssueNumber = number
	}

	slog.Info("Parsed GitHub context",
		"eventName", runCtx.EventName,
		"repository", runCtx.Repository,
		"sha", runCtx.Sha,
		"ref", runCtx.Ref,
		"actor", runCtx.Actor,
		"hasIssueNumber", runCtx.IssueNumber != nil,
	)
	return &runCtx, nil
}

// ParseRepoNamespace splits "owner/name". A namespace without a slash is
// treated as a bare repository name.
func ParseRepoNamespace(namespace string) (string, string) {
	owner, name, found := strings.Cut(namespace, "/")
	if !found {
		return "", namespace
	}
	return owner, name
}

type eventPayload struct {
	Number      *int         `json:"number"`
	Issue       *numberField `json:"issue"`
	PullRequest *numberField `json:"pull_request"`
}

type numberField struct {
	Number *int `json:"number"`
}

// issueNumber follows the lookup order of the actions toolkit: issue, then
// pull_request, then the top level number.
func (p eventPayload) issueNumber() *int {
	if p.Issue != nil && p.Issue.Number != nil {
		return p.Issue.Number
	}
	if p.PullRequest != nil && p.PullRequest.Number != nil {
		return p.PullRequest.Number
	}
	return p.Number
}

func issueNumberFromEventFile(path string) (*int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("GitHub event payload not found", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("could not read event payload %v: %w", path, err)
	}
	var payload eventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("could not parse event payload %v: %w", path, err)
	}
	return payload.issueNumber(), nil
}
