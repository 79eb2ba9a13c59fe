// Package loader discovers task definition files and supplies their parsed
// documents to the registry. The registry itself performs no I/O; this
// package is the external collaborator that does.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/config"
	log "github.com/baberabb/lm-evaluation-harness-sub001/pkg/logger"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/registry"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/schema"
	u "github.com/baberabb/lm-evaluation-harness-sub001/pkg/utils"
)

// Loader reads task definition YAML files from the configured directories.
type Loader struct {
	harnessConfig *schema.HarnessConfiguration
}

// New creates a Loader for the given configuration.
func New(harnessConfig *schema.HarnessConfiguration) *Loader {
	return &Loader{harnessConfig: harnessConfig}
}

// LoadSources walks the task directory, parses every included YAML file
// (multi-document files yield one source per document), fetches remote
// includes, and returns the sources in deterministic path order.
func (l *Loader) LoadSources() ([]registry.Source, error) {
	taskDir, err := config.TaskDirAbsolutePath(l.harnessConfig)
	if err != nil {
		return nil, err
	}

	paths, err := l.findDefinitionFiles(taskDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no definitions under %s", errUtils.ErrNoTaskDirectories, taskDir)
	}

	var sources []registry.Source
	for _, path := range paths {
		docs, err := l.parseFile(taskDir, path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, docs...)
	}

	remote, err := l.fetchRemoteIncludes(sources)
	if err != nil {
		return nil, err
	}
	sources = append(sources, remote...)

	log.Debug("loaded task definition sources", "dir", taskDir, "count", len(sources))
	return sources, nil
}

// findDefinitionFiles returns all files under taskDir matching the configured
// include patterns and not matching the exclude patterns, sorted.
func (l *Loader) findDefinitionFiles(taskDir string) ([]string, error) {
	var paths []string

	walkErr := filepath.WalkDir(taskDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(taskDir, path)
		if err != nil {
			return err
		}

		included, err := l.matchAny(l.harnessConfig.Tasks.IncludedPaths, rel)
		if err != nil {
			return err
		}
		if !included {
			return nil
		}

		excluded, err := l.matchAny(l.harnessConfig.Tasks.ExcludedPaths, rel)
		if err != nil {
			return err
		}
		if excluded {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(paths)
	return paths, nil
}

// matchAny reports whether rel matches any of the wildcard patterns.
// An empty pattern list matches nothing.
func (l *Loader) matchAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := u.MatchWildcard(pattern, rel)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// parseFile reads one YAML file into sources, one per non-empty document.
func (l *Loader) parseFile(taskDir, path string) ([]registry.Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	docs, err := u.UnmarshalYAMLDocuments(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
	}

	rel, err := filepath.Rel(taskDir, path)
	if err != nil {
		rel = path
	}

	sources := make([]registry.Source, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, registry.Source{Origin: rel, Data: doc})
	}
	return sources, nil
}
