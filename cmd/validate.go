package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
)

// validateExitCode distinguishes definition problems from operational
// failures (exit code 1) for scripted callers.
const validateExitCode = 2

var validateCmd = &cobra.Command{
	Use:     "validate",
	Short:   "Validate all task and group definitions",
	Long:    `Validate loads every configured task definition file, checks each record against the schema, and verifies registry-wide invariants: group members must exist, tags may not contain groups, and group membership must be acyclic. All problems are reported together.`,
	Example: "lmeval validate",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return errUtils.WithExitCode(err, validateExitCode)
		}

		if errs := reg.ValidateHierarchy(); len(errs) > 0 {
			return errUtils.WithExitCode(errors.Join(errs...), validateExitCode)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Validated %d tasks and %d groups\n",
			len(reg.ListTasks()), len(reg.ListGroups())+len(reg.ListTags()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
