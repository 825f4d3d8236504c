package main

import (
	"fmt"

	"github.com/diggerhq/deploy-preview/pkg/utils"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), utils.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
