package merge

import (
	"fmt"

	"dario.cat/mergo"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/schema"
	u "github.com/baberabb/lm-evaluation-harness-sub001/pkg/utils"
)

// List merge strategies applied when two records define the same list field.
const (
	// ListMergeStrategyReplace replaces lists in left maps with lists in right maps.
	ListMergeStrategyReplace = "replace"
	// ListMergeStrategyAppend appends lists from right maps to lists in left maps.
	ListMergeStrategyAppend = "append"
	// ListMergeStrategyMerge merges list items at the same positions.
	ListMergeStrategyMerge = "merge"
)

// MergeWithOptions takes a list of maps and deep-merges them in order, with
// the last map taking the highest precedence.
//
// Each input is round-tripped through YAML before merging: mergo mutates its
// arguments, and without the deep copy the same pointers would be shared
// between inputs, corrupting records that are merged more than once (a
// template included by many tasks).
func MergeWithOptions(
	inputs []map[string]any,
	appendSlice bool,
	sliceDeepCopy bool,
) (map[string]any, error) {
	merged := map[string]any{}

	for index := range inputs {
		current := inputs[index]

		if len(current) == 0 {
			continue
		}

		yamlCurrent, err := u.ConvertToYAML(current)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errUtils.ErrMerge, err)
		}

		dataCurrent, err := u.UnmarshalYAML[map[string]any](yamlCurrent)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errUtils.ErrMerge, err)
		}

		var opts []func(*mergo.Config)
		opts = append(opts, mergo.WithOverride, mergo.WithTypeCheck)

		if sliceDeepCopy {
			opts = append(opts, mergo.WithSliceDeepCopy)
		} else if appendSlice {
			opts = append(opts, mergo.WithAppendSlice)
		}

		if err = mergo.Merge(&merged, dataCurrent, opts...); err != nil {
			return nil, fmt.Errorf("%w: %s", errUtils.ErrMerge, err)
		}
	}

	return merged, nil
}

// Merge takes a list of maps as input and deep-merges them according to the
// configured list merge strategy (defaulting to replace).
func Merge(
	harnessConfig *schema.HarnessConfiguration,
	inputs []map[string]any,
) (map[string]any, error) {
	if harnessConfig == nil {
		return nil, fmt.Errorf("%w: harness config is nil", errUtils.ErrMerge)
	}

	strategy := harnessConfig.Settings.ListMergeStrategy
	if strategy == "" {
		strategy = ListMergeStrategyReplace
	}

	switch strategy {
	case ListMergeStrategyReplace:
		return MergeWithOptions(inputs, false, false)
	case ListMergeStrategyAppend:
		return MergeWithOptions(inputs, true, false)
	case ListMergeStrategyMerge:
		return MergeWithOptions(inputs, false, true)
	default:
		return nil, fmt.Errorf("%w: %s (supported: replace, append, merge)",
			errUtils.ErrUnknownListMergeStrategy, strategy)
	}
}
