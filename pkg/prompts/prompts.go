// Package prompts parses `use_prompt` references of the form
// `prompt_source:selector`, where the selector names a single prompt template
// or a wildcard pattern selecting several.
package prompts

import (
	"fmt"
	"strings"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
	u "github.com/baberabb/lm-evaluation-harness-sub001/pkg/utils"
)

// Reference is a parsed prompt-template reference.
type Reference struct {
	// Source names the prompt collection, e.g. "promptsource".
	Source string
	// Selector names a template within the source. May contain glob
	// wildcards to select multiple templates.
	Selector string
}

// Parse splits a `source:selector` reference. The source must be non-empty;
// an empty selector is rejected.
func Parse(ref string) (Reference, error) {
	source, selector, found := strings.Cut(ref, ":")
	if !found {
		return Reference{}, fmt.Errorf("%w: '%s' (expected 'source:selector')", errUtils.ErrInvalidPromptReference, ref)
	}
	if source == "" || selector == "" {
		return Reference{}, fmt.Errorf("%w: '%s' (source and selector must be non-empty)", errUtils.ErrInvalidPromptReference, ref)
	}

	return Reference{Source: source, Selector: selector}, nil
}

// IsValid reports whether ref parses as a prompt reference.
func IsValid(ref string) bool {
	_, err := Parse(ref)
	return err == nil
}

// IsWildcard reports whether the selector contains glob metacharacters and
// may therefore select more than one template.
func (r Reference) IsWildcard() bool {
	return strings.ContainsAny(r.Selector, "*?[{")
}

// Match reports whether a template name from the reference's source is
// selected by this reference.
func (r Reference) Match(templateName string) (bool, error) {
	return u.MatchWildcard(r.Selector, templateName)
}

// String renders the reference back to its `source:selector` form.
func (r Reference) String() string {
	return r.Source + ":" + r.Selector
}
