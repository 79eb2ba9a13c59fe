package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-getter"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
	log "github.com/baberabb/lm-evaluation-harness-sub001/pkg/logger"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/registry"
	u "github.com/baberabb/lm-evaluation-harness-sub001/pkg/utils"
)

// remoteTimeout bounds each remote template download.
const remoteTimeout = 5 * time.Second

// isRemoteInclude reports whether an include reference points at a URL
// rather than a local record or file.
func isRemoteInclude(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// fetchRemoteIncludes downloads every remote `include:` target referenced by
// the given sources and returns their parsed documents as additional sources
// keyed by URL, so the registry can resolve the references.
func (l *Loader) fetchRemoteIncludes(sources []registry.Source) ([]registry.Source, error) {
	urls := remoteIncludeURLs(sources)
	if len(urls) == 0 {
		return nil, nil
	}

	tempDir, err := os.MkdirTemp("", "lmeval-remote-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tempDir)

	var fetched []registry.Source
	for i, url := range urls {
		tempFile := filepath.Join(tempDir, fmt.Sprintf("include-%d.yaml", i))
		if err := downloadRemoteDefinition(url, tempFile); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(tempFile)
		if err != nil {
			return nil, err
		}
		docs, err := u.UnmarshalYAMLDocuments(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse remote include '%s': %w", url, err)
		}

		for _, doc := range docs {
			fetched = append(fetched, registry.Source{Origin: url, Data: doc})
		}
		log.Debug("fetched remote include", "url", url)
	}

	return fetched, nil
}

// remoteIncludeURLs collects distinct remote include references in
// first-seen order.
func remoteIncludeURLs(sources []registry.Source) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, src := range sources {
		ref, _ := src.Data["include"].(string)
		if ref == "" || !isRemoteInclude(ref) || seen[ref] {
			continue
		}
		seen[ref] = true
		urls = append(urls, ref)
	}
	return urls
}

func downloadRemoteDefinition(url, dst string) error {
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	client := &getter.Client{
		Ctx:  ctx,
		Src:  url,
		Dst:  dst,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		os.RemoveAll(dst)
		return fmt.Errorf("%w: '%s': %s", errUtils.ErrDownloadFailed, url, err)
	}
	return nil
}
