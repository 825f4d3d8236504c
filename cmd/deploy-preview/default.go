package main

import (
	"fmt"
	"log/slog"

	dg_github "github.com/diggerhq/deploy-preview/pkg/ci/github"
	"github.com/diggerhq/deploy-preview/pkg/config"
	"github.com/spf13/cobra"
)

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Run as a GitHub Actions step, reading inputs and context from the runner",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadDeployConfig()
		if err != nil {
			reportErrorAndExit("", fmt.Sprintf("Failed to read action inputs. %s", err), 1)
		}
		runCtx, err := config.LoadRunContext()
		if err != nil {
			reportErrorAndExit("", fmt.Sprintf("Failed to parse GitHub context. %s", err), 1)
		}

		runner, err := newRunner(cfg, runCtx, dg_github.GithubServiceProviderBasic{})
		if err != nil {
			reportErrorAndExit(runCtx.Actor, fmt.Sprintf("could not create github service: %v", err), 1)
		}

		if err := runner.Run(cmd.Context()); err != nil {
			reportErrorAndExit(runCtx.Actor, err.Error(), 1)
		}
		slog.Info("Deploy preview finished")
	},
}

func init() {
	rootCmd.AddCommand(defaultCmd)
}
