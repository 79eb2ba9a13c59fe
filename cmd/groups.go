package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	l "github.com/baberabb/lm-evaluation-harness-sub001/pkg/list"
)

// groupsCmd groups group-related subcommands.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Work with registered groups and tags",
}

var groupsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List registered groups",
	Example: "lmeval groups list\nlmeval groups list --tags",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		pattern, _ := cmd.Flags().GetString("pattern")
		tags, _ := cmd.Flags().GetBool("tags")
		out, err := l.FilterAndListGroups(reg, pattern, tags)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	groupsListCmd.Flags().String("pattern", "", "Only list groups matching the glob pattern")
	groupsListCmd.Flags().Bool("tags", false, "List tag groups instead of regular groups")
	groupsCmd.AddCommand(groupsListCmd)
	RootCmd.AddCommand(groupsCmd)
}
