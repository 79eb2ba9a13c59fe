package errors

import "github.com/cockroachdb/errors"

// Registry construction and resolution errors.
var (
	// ErrDuplicateIdentifier is returned when two records declare the same task or group name.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	// ErrUnknownReference is returned when a group member does not resolve to a known task or group.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrCyclicGroup is returned when group expansion revisits a group already on the expansion path.
	ErrCyclicGroup = errors.New("cyclic group membership")
	// ErrUnresolvedInclude is returned when an `include` reference does not name an existing template.
	ErrUnresolvedInclude = errors.New("unresolved include")
	// ErrValidation is returned for records with malformed or missing required fields.
	ErrValidation = errors.New("invalid task definition")
	// ErrInvalidPromptReference is returned when a `use_prompt` value does not match `source:selector`.
	ErrInvalidPromptReference = errors.New("invalid prompt reference")
	// ErrTagContainsGroup is returned when a tag references a group. Tags are flat collections of tasks.
	ErrTagContainsGroup = errors.New("tag cannot contain a group")
)

// Merge errors.
var (
	ErrMerge                    = errors.New("merge error")
	ErrUnknownListMergeStrategy = errors.New("unknown list merge strategy")
)

// Loader and configuration errors.
var (
	ErrIncludeDepthExceeded = errors.New("maximum include depth exceeded")
	ErrNoTaskDirectories    = errors.New("no task definition directories configured")
	ErrDownloadFailed       = errors.New("failed to download remote task definition")
)
