package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Display the version of lmeval you are running",
	Example: "lmeval version",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
