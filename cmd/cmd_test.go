package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
)

// writeTaskFixtures lays out a minimal task directory under dir.
func writeTaskFixtures(t *testing.T, dir string) {
	t.Helper()

	taskDir := filepath.Join(dir, "tasks")
	require.NoError(t, os.MkdirAll(taskDir, 0o755))

	mathYAML := `task: agieval_sat_math
output_type: multiple_choice
dataset_path: hails/agieval
metric_list:
  - metric: acc
`
	lrYAML := `task: agieval_lsat_lr
output_type: multiple_choice
dataset_path: hails/agieval
metric_list:
  - metric: acc
`
	groupYAML := `group: agieval
task:
  - agieval_sat_math
  - agieval_lsat_lr
`
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, "math.yaml"), []byte(mathYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, "lr.yaml"), []byte(lrYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, "suite.yaml"), []byte(groupYAML), 0o644))
}

// executeCommand runs the root command with the given args and captures stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	RootCmd.SetOut(buf)
	RootCmd.SetErr(buf)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestTasksListCommand(t *testing.T) {
	tmp := t.TempDir()
	writeTaskFixtures(t, tmp)
	t.Chdir(tmp)

	out, err := executeCommand(t, "tasks", "list")
	require.NoError(t, err)
	assert.Equal(t, "agieval_lsat_lr\nagieval_sat_math\n", out)
}

func TestGroupsListCommand(t *testing.T) {
	tmp := t.TempDir()
	writeTaskFixtures(t, tmp)
	t.Chdir(tmp)

	out, err := executeCommand(t, "groups", "list")
	require.NoError(t, err)
	assert.Equal(t, "agieval\n", out)
}

func TestResolveCommand(t *testing.T) {
	tmp := t.TempDir()
	writeTaskFixtures(t, tmp)
	t.Chdir(tmp)

	out, err := executeCommand(t, "resolve", "agieval")
	require.NoError(t, err)
	assert.Equal(t, "agieval_sat_math\nagieval_lsat_lr\n", out)
}

func TestResolveCommandUnknownName(t *testing.T) {
	tmp := t.TempDir()
	writeTaskFixtures(t, tmp)
	t.Chdir(tmp)

	_, err := executeCommand(t, "resolve", "no_such_name")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrUnknownReference)
}

func TestDescribeCommand(t *testing.T) {
	tmp := t.TempDir()
	writeTaskFixtures(t, tmp)
	t.Chdir(tmp)

	out, err := executeCommand(t, "describe", "agieval_sat_math")
	require.NoError(t, err)
	assert.Contains(t, out, "task: agieval_sat_math")
	assert.Contains(t, out, "dataset_path: hails/agieval")
}

func TestValidateCommand(t *testing.T) {
	tmp := t.TempDir()
	writeTaskFixtures(t, tmp)
	t.Chdir(tmp)

	out, err := executeCommand(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Validated 2 tasks and 1 groups")
}

func TestValidateCommandReportsCycle(t *testing.T) {
	tmp := t.TempDir()
	taskDir := filepath.Join(tmp, "tasks")
	require.NoError(t, os.MkdirAll(taskDir, 0o755))

	cycleYAML := `group: a
task:
  - b
---
group: b
task:
  - a
`
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, "cycle.yaml"), []byte(cycleYAML), 0o644))
	t.Chdir(tmp)

	_, err := executeCommand(t, "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrCyclicGroup)
	assert.Equal(t, 2, errUtils.GetExitCode(err))
}
