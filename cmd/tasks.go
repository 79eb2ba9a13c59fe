package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	l "github.com/baberabb/lm-evaluation-harness-sub001/pkg/list"
)

// tasksCmd groups task-related subcommands.
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Work with registered tasks",
}

var tasksListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List registered tasks",
	Example: "lmeval tasks list\nlmeval tasks list --pattern 'agieval_*'\nlmeval tasks list --verbose",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			fmt.Fprint(cmd.OutOrStdout(), l.ListTasksTable(reg))
			return nil
		}

		pattern, _ := cmd.Flags().GetString("pattern")
		out, err := l.FilterAndListTasks(reg, pattern)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	tasksListCmd.Flags().String("pattern", "", "Only list tasks matching the glob pattern")
	tasksListCmd.Flags().BoolP("verbose", "v", false, "Include output type and dataset columns")
	tasksCmd.AddCommand(tasksListCmd)
	RootCmd.AddCommand(tasksCmd)
}
