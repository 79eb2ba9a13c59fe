package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/describe"
)

var describeCmd = &cobra.Command{
	Use:     "describe <name>",
	Short:   "Show the resolved configuration of a task or group",
	Example: "lmeval describe agieval_sat_math\nlmeval describe agieval --tree",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		tree, _ := cmd.Flags().GetBool("tree")
		var out string
		if tree {
			out, err = describe.ExecuteDescribeTree(reg, args[0])
		} else {
			out, err = describe.ExecuteDescribe(reg, args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	describeCmd.Flags().Bool("tree", false, "Render the group membership hierarchy instead of the config")
	RootCmd.AddCommand(describeCmd)
}
