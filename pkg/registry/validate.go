package registry

import (
	"fmt"
	"strings"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/prompts"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/schema"
)

// ValidateTask checks a decoded task record for schema violations:
// a recognized output type, a non-empty metric list, and a well-formed
// prompt reference when one is present.
func ValidateTask(task *schema.TaskConfig) []error {
	var errs []error

	if task.Task == "" {
		errs = append(errs, fmt.Errorf("%w: task record has no name", errUtils.ErrValidation))
	}

	if !schema.IsValidOutputType(task.OutputType) {
		errs = append(errs, fmt.Errorf("%w: task '%s' has unrecognized output_type '%s' (expected one of: %s)",
			errUtils.ErrValidation, task.Task, task.OutputType, outputTypeNames()))
	}

	if len(task.MetricList) == 0 {
		errs = append(errs, fmt.Errorf("%w: task '%s' has an empty metric_list", errUtils.ErrValidation, task.Task))
	}
	for _, metric := range task.MetricList {
		if metric.Metric == "" {
			errs = append(errs, fmt.Errorf("%w: task '%s' has a metric entry with no name", errUtils.ErrValidation, task.Task))
		}
	}

	if task.UsePrompt != "" {
		if _, err := prompts.Parse(task.UsePrompt); err != nil {
			errs = append(errs, fmt.Errorf("%w: task '%s': %s", errUtils.ErrValidation, task.Task, err))
		}
	}

	return errs
}

// ValidateGroup checks a decoded group record. Aggregation across subtasks
// only supports mean; anything else is rejected up front rather than at
// aggregation time.
func ValidateGroup(group *schema.GroupConfig) []error {
	var errs []error

	if group.Group == "" {
		errs = append(errs, fmt.Errorf("%w: group record has no name", errUtils.ErrValidation))
	}

	for _, agg := range group.AggregateMetricList {
		if agg.Metric == "" {
			errs = append(errs, fmt.Errorf("%w: group '%s' has an aggregate metric entry with no name", errUtils.ErrValidation, group.Group))
		}
		if a := agg.AggregationOrDefault(); a != schema.AggregationMean {
			errs = append(errs, fmt.Errorf("%w: group '%s': '%s' is the only supported aggregation across subtasks, got '%s'",
				errUtils.ErrValidation, group.Group, schema.AggregationMean, a))
		}
	}

	return errs
}

// ValidateHierarchy checks registry-wide membership invariants: every group
// member resolves to a known task or group, no membership cycle exists, and
// tags contain only tasks. All violations are returned in one pass.
func (r *Registry) ValidateHierarchy() []error {
	var errs []error

	inCycle := make(map[string]bool)
	for _, name := range r.groupNamesStable() {
		group := r.groups[name]

		for _, member := range group.Task {
			if !r.HasName(member) {
				errs = append(errs, fmt.Errorf("%w: group '%s' references '%s'", errUtils.ErrUnknownReference, name, member))
				continue
			}
			if group.IsTag() {
				if _, isGroup := r.groups[member]; isGroup {
					errs = append(errs, fmt.Errorf("%w: tag '%s' references group '%s'", errUtils.ErrTagContainsGroup, name, member))
				}
			}
		}

		if inCycle[name] {
			continue
		}
		if cycle := r.findCycle(name, nil); cycle != nil {
			for _, member := range cycle {
				inCycle[member] = true
			}
			errs = append(errs, fmt.Errorf("%w: %s", errUtils.ErrCyclicGroup, strings.Join(cycle, " -> ")))
		}
	}

	return errs
}

// findCycle walks group membership depth-first and returns the first cycle
// found as the sequence of group names on the path, or nil.
func (r *Registry) findCycle(name string, path []string) []string {
	for _, onPath := range path {
		if onPath == name {
			return append(append([]string{}, path...), name)
		}
	}

	group, ok := r.groups[name]
	if !ok {
		return nil
	}

	path = append(path, name)
	for _, member := range group.Task {
		if cycle := r.findCycle(member, path); cycle != nil {
			return cycle
		}
	}
	return nil
}

// groupNamesStable returns group names in declaration order, with implicit
// groups appended alphabetically.
func (r *Registry) groupNamesStable() []string {
	var names []string
	for _, name := range r.order {
		if _, ok := r.groups[name]; ok {
			names = append(names, name)
		}
	}
	for _, name := range r.ListGroups() {
		if r.implicit[name] {
			names = append(names, name)
		}
	}
	for _, name := range r.ListTags() {
		if r.implicit[name] {
			names = append(names, name)
		}
	}
	return names
}

func outputTypeNames() string {
	names := make([]string, len(schema.OutputTypes))
	for i, t := range schema.OutputTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
