package main

import (
	"log/slog"
	"os"

	dg_github "github.com/diggerhq/deploy-preview/pkg/ci/github"
	"github.com/diggerhq/deploy-preview/pkg/config"
	"github.com/diggerhq/deploy-preview/pkg/execution"
	"github.com/diggerhq/deploy-preview/pkg/preview"
	"github.com/diggerhq/deploy-preview/pkg/vercel"
	"github.com/spf13/cobra"
)

func initLogger() {
	logLevel := os.Getenv("DEPLOY_PREVIEW_LOG_LEVEL")
	var level slog.Leveler
	if logLevel == "DEBUG" || os.Getenv("RUNNER_DEBUG") == "1" {
		level = slog.LevelDebug
	} else {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
}

func newRunner(cfg *config.DeployConfig, runCtx *config.RunContext, githubServiceProvider dg_github.GithubServiceProvider) (preview.Runner, error) {
	githubService, err := githubServiceProvider.NewService(cfg.GithubToken, runCtx.RepoName, runCtx.RepoOwner)
	if err != nil {
		return preview.Runner{}, err
	}

	return preview.Runner{
		Config:   cfg,
		Context:  runCtx,
		Deployer: execution.NewDeployCLI(cfg.WorkingDirectory, cfg.ProviderToken, cfg.GithubToken),
		Resolver: preview.Resolver{
			Deployments: vercel.NewClient(cfg.ApiUrl, cfg.ProviderToken, cfg.TeamId),
		},
		Comments: githubService,
		Output:   dg_github.NewActionsOutput(),
	}, nil
}

func reportErrorAndExit(actor string, message string, exitCode int) {
	if exitCode == 0 {
		slog.Info(message)
	} else {
		slog.Error(message, "actor", actor)
		dg_github.ErrorAnnotation(os.Stdout, message)
	}
	os.Exit(exitCode)
}

var rootCmd = &cobra.Command{
	Use:   "deploy-preview",
	Short: "Deploy a preview and report its url on the commit or pull request",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}
