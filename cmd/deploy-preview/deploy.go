package main

import (
	"fmt"
	"log/slog"
	"strings"

	dg_github "github.com/diggerhq/deploy-preview/pkg/ci/github"
	"github.com/diggerhq/deploy-preview/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type RunConfig struct {
	ProviderToken    string `mapstructure:"provider-token"`
	TeamId           string `mapstructure:"team-id"`
	CliArgs          string `mapstructure:"cli-args"`
	GithubToken      string `mapstructure:"github-token"`
	RepoNamespace    string `mapstructure:"repo-namespace"`
	Sha              string `mapstructure:"sha"`
	Ref              string `mapstructure:"ref"`
	Actor            string `mapstructure:"actor"`
	EventName        string `mapstructure:"event-name"`
	PRNumber         int    `mapstructure:"pr-number"`
	WorkingDirectory string `mapstructure:"working-directory"`
	ApiUrl           string `mapstructure:"api-url"`
}

func (r *RunConfig) ToConfig() (*config.DeployConfig, *config.RunContext) {
	cfg := &config.DeployConfig{
		ProviderToken:    r.ProviderToken,
		TeamId:           r.TeamId,
		CliArgs:          r.CliArgs,
		GithubToken:      r.GithubToken,
		WorkingDirectory: r.WorkingDirectory,
		ApiUrl:           r.ApiUrl,
	}
	if cfg.WorkingDirectory == "" {
		cfg.WorkingDirectory = "."
	}
	if cfg.ApiUrl == "" {
		cfg.ApiUrl = config.DefaultApiUrl
	}

	repoOwner, repoName := config.ParseRepoNamespace(r.RepoNamespace)
	runCtx := &config.RunContext{
		EventName:  r.EventName,
		Repository: r.RepoNamespace,
		Sha:        r.Sha,
		Ref:        r.Ref,
		Actor:      r.Actor,
		RepoOwner:  repoOwner,
		RepoName:   repoName,
	}
	if r.PRNumber > 0 {
		number := r.PRNumber
		runCtx.IssueNumber = &number
	}
	return cfg, runCtx
}

var vipDeploy *viper.Viper

var deployCmd = &cobra.Command{
	Use:   "deploy [flags]",
	Short: "Deploy and report the preview outside of GitHub Actions",
	Long:  `Deploy and report the preview outside of GitHub Actions, every flag can also be set as DEPLOY_PREVIEW_<FLAG>`,
	Run: func(cmd *cobra.Command, args []string) {
		var runConfig RunConfig
		if err := vipDeploy.Unmarshal(&runConfig); err != nil {
			reportErrorAndExit("", fmt.Sprintf("could not read flags: %v", err), 1)
		}

		cfg, runCtx := runConfig.ToConfig()
		runner, err := newRunner(cfg, runCtx, dg_github.GithubServiceProviderBasic{})
		if err != nil {
			reportErrorAndExit(runConfig.Actor, fmt.Sprintf("could not create github service: %v", err), 1)
		}

		if err := runner.Run(cmd.Context()); err != nil {
			reportErrorAndExit(runConfig.Actor, err.Error(), 1)
		}
		slog.Info("Deploy preview finished")
	},
}

func init() {
	flags := []pflag.Flag{
		{Name: "provider-token", Usage: "Token for the deployment CLI and deployments api"},
		{Name: "team-id", Usage: "Team to scope the deployment and api queries to"},
		{Name: "cli-args", Usage: "Extra arguments for the deployment CLI"},
		{Name: "github-token", Usage: "Github token used to comment"},
		{Name: "repo-namespace", Usage: "The owner/name of this repo"},
		{Name: "sha", Usage: "The commit being deployed"},
		{Name: "ref", Usage: "The ref being deployed"},
		{Name: "actor", Usage: "The actor of this deployment"},
		{Name: "event-name", Usage: "The triggering event, push comments on the commit"},
		{Name: "pr-number", Usage: "The PR to comment on"},
		{Name: "working-directory", Usage: "Directory to deploy from"},
		{Name: "api-url", Usage: "Base url of the deployments api"},
	}

	vipDeploy = viper.New()
	vipDeploy.SetEnvPrefix("DEPLOY_PREVIEW")
	vipDeploy.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vipDeploy.AutomaticEnv()

	for _, flag := range flags {
		deployCmd.Flags().String(flag.Name, "", flag.Usage)
		vipDeploy.BindPFlag(flag.Name, deployCmd.Flags().Lookup(flag.Name))
	}

	rootCmd.AddCommand(deployCmd)
}
