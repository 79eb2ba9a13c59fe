package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:     "resolve <name>",
	Short:   "Expand a task or group name into its leaf tasks",
	Long:    `Resolve expands a name into the ordered list of leaf tasks it denotes. A task name yields itself; a group name is expanded depth-first, preserving declaration order and de-duplicating tasks reachable through multiple subgroups.`,
	Example: "lmeval resolve agieval",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		resolved, err := reg.Resolve(args[0])
		if err != nil {
			return err
		}

		for _, task := range resolved.Tasks {
			fmt.Fprintln(cmd.OutOrStdout(), task.Task)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(resolveCmd)
}
