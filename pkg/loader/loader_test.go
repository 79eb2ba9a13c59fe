package loader

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/registry"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/schema"
)

func testConfig(baseDir string) *schema.HarnessConfiguration {
	return &schema.HarnessConfiguration{
		BasePath: baseDir,
		Tasks: schema.TasksConfig{
			BasePath:      "tasks",
			IncludedPaths: []string{"**/*.yaml", "**/*.yml"},
		},
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadSources(t *testing.T) {
	baseDir := t.TempDir()
	taskDir := filepath.Join(baseDir, "tasks")

	writeFile(t, taskDir, "wikitext/wikitext.yaml", `
task: wikitext
output_type: loglikelihood_rolling
dataset_path: EleutherAI/wikitext_document_level
metric_list:
  - metric: word_perplexity
`)
	writeFile(t, taskDir, "agieval/sat_math.yml", `
task: agieval_sat_math
output_type: multiple_choice
dataset_path: hails/agieval
metric_list:
  - metric: acc
`)
	writeFile(t, taskDir, "README.md", "not a task definition")

	sources, err := New(testConfig(baseDir)).LoadSources()
	require.NoError(t, err)
	require.Len(t, sources, 2)

	// Deterministic path order.
	assert.Equal(t, filepath.Join("agieval", "sat_math.yml"), sources[0].Origin)
	assert.Equal(t, filepath.Join("wikitext", "wikitext.yaml"), sources[1].Origin)
	assert.Equal(t, "agieval_sat_math", sources[0].Data["task"])
}

func TestLoadSourcesMultiDocument(t *testing.T) {
	baseDir := t.TempDir()
	taskDir := filepath.Join(baseDir, "tasks")

	writeFile(t, taskDir, "suite.yaml", `
task: one
output_type: generate_until
metric_list:
  - metric: exact_match
---
task: two
output_type: generate_until
metric_list:
  - metric: exact_match
`)

	sources, err := New(testConfig(baseDir)).LoadSources()
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "one", sources[0].Data["task"])
	assert.Equal(t, "two", sources[1].Data["task"])
}

func TestLoadSourcesExcludedPaths(t *testing.T) {
	baseDir := t.TempDir()
	taskDir := filepath.Join(baseDir, "tasks")

	writeFile(t, taskDir, "keep.yaml", "task: keep")
	writeFile(t, taskDir, "drafts/skip.yaml", "task: skip")

	cfg := testConfig(baseDir)
	cfg.Tasks.ExcludedPaths = []string{"drafts/**"}

	sources, err := New(cfg).LoadSources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "keep", sources[0].Data["task"])
}

func TestLoadSourcesEmptyDir(t *testing.T) {
	baseDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "tasks"), 0o755))

	_, err := New(testConfig(baseDir)).LoadSources()
	assert.ErrorIs(t, err, errUtils.ErrNoTaskDirectories)
}

func TestLoadSourcesInvalidYAML(t *testing.T) {
	baseDir := t.TempDir()
	writeFile(t, filepath.Join(baseDir, "tasks"), "bad.yaml", "task: [unclosed")

	_, err := New(testConfig(baseDir)).LoadSources()
	assert.Error(t, err)
}

func TestIsRemoteInclude(t *testing.T) {
	assert.True(t, isRemoteInclude("https://example.com/template.yaml"))
	assert.True(t, isRemoteInclude("http://example.com/template.yaml"))
	assert.False(t, isRemoteInclude("_default_template_yaml"))
	assert.False(t, isRemoteInclude("../shared/template.yaml"))
}

func TestRemoteIncludeURLs(t *testing.T) {
	sources := []registry.Source{
		{Data: map[string]any{"task": "a", "include": "https://example.com/t.yaml"}},
		{Data: map[string]any{"task": "b", "include": "https://example.com/t.yaml"}},
		{Data: map[string]any{"task": "c", "include": "local_template"}},
		{Data: map[string]any{"task": "d"}},
	}

	urls := remoteIncludeURLs(sources)
	assert.Equal(t, []string{"https://example.com/t.yaml"}, urls)
}

func TestLoadSourcesFetchesRemoteInclude(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `
output_type: multiple_choice
dataset_path: hails/agieval
validation_split: validation
metric_list:
  - metric: acc
`)
	}))
	defer server.Close()
	templateURL := server.URL + "/template.yaml"

	baseDir := t.TempDir()
	taskDir := filepath.Join(baseDir, "tasks")
	writeFile(t, taskDir, "sat_math.yaml", fmt.Sprintf(`
task: agieval_sat_math
include: %s
dataset_name: sat-math
`, templateURL))

	sources, err := New(testConfig(baseDir)).LoadSources()
	require.NoError(t, err)

	// The downloaded template is registered under its URL.
	require.Len(t, sources, 2)
	assert.Equal(t, templateURL, sources[1].Origin)
	assert.Equal(t, "multiple_choice", sources[1].Data["output_type"])

	// The including task inherits the template's fields through the registry.
	reg, err := registry.Load(testConfig(baseDir), sources)
	require.NoError(t, err)

	task, ok := reg.Task("agieval_sat_math")
	require.True(t, ok)
	assert.Equal(t, "multiple_choice", task.OutputType)
	assert.Equal(t, "hails/agieval", task.DatasetPath)
	assert.Equal(t, "validation", task.ValidationSplit)
	assert.Equal(t, "sat-math", task.DatasetName)
}

func TestLoadSourcesRemoteIncludeDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	baseDir := t.TempDir()
	taskDir := filepath.Join(baseDir, "tasks")
	writeFile(t, taskDir, "broken.yaml", fmt.Sprintf(`
task: broken
include: %s
`, server.URL+"/missing.yaml"))

	_, err := New(testConfig(baseDir)).LoadSources()
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrDownloadFailed)
}

func TestLoadSourcesEndToEndWithRegistry(t *testing.T) {
	baseDir := t.TempDir()
	taskDir := filepath.Join(baseDir, "tasks")

	writeFile(t, taskDir, "agieval/_template.yaml", `
output_type: multiple_choice
dataset_path: hails/agieval
metric_list:
  - metric: acc
  - metric: acc_norm
`)
	writeFile(t, taskDir, "agieval/sat_math.yaml", `
task: agieval_sat_math
include: _template
group: agieval
dataset_name: sat-math
`)

	sources, err := New(testConfig(baseDir)).LoadSources()
	require.NoError(t, err)

	reg, err := registry.Load(testConfig(baseDir), sources)
	require.NoError(t, err)

	task, ok := reg.Task("agieval_sat_math")
	require.True(t, ok)
	assert.Equal(t, "multiple_choice", task.OutputType)
	assert.Equal(t, "sat-math", task.DatasetName)
	assert.Equal(t, []string{"agieval"}, reg.GroupsForTask("agieval_sat_math"))
}
