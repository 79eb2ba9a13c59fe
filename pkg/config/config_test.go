package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitHarnessConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := InitHarnessConfig("")
	require.NoError(t, err)

	assert.True(t, cfg.Initialized)
	assert.Equal(t, ".", cfg.BasePath)
	assert.Equal(t, "tasks", cfg.Tasks.BasePath)
	assert.Equal(t, "Info", cfg.Logs.Level)
	assert.Equal(t, "replace", cfg.Settings.ListMergeStrategy)
	assert.Equal(t, 10, cfg.Settings.MaxIncludeDepth)
}

func TestInitHarnessConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
base_path: /opt/evals
tasks:
  base_path: definitions
logs:
  level: Debug
settings:
  list_merge_strategy: append
`
	path := filepath.Join(dir, "lmeval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := InitHarnessConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/evals", cfg.BasePath)
	assert.Equal(t, "definitions", cfg.Tasks.BasePath)
	assert.Equal(t, "Debug", cfg.Logs.Level)
	assert.Equal(t, "append", cfg.Settings.ListMergeStrategy)
}

func TestInitHarnessConfigMissingExplicitFile(t *testing.T) {
	_, err := InitHarnessConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTaskDirAbsolutePath(t *testing.T) {
	cfg, err := InitHarnessConfig("")
	require.NoError(t, err)

	cfg.BasePath = "/opt/evals"
	cfg.Tasks.BasePath = "definitions"

	dir, err := TaskDirAbsolutePath(&cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/evals", "definitions"), dir)

	cfg.Tasks.BasePath = "/abs/tasks"
	dir, err = TaskDirAbsolutePath(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "/abs/tasks", dir)
}
