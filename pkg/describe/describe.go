package describe

import (
	"fmt"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/registry"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/utils"
)

// ExecuteDescribe returns the fully resolved configuration for a task or
// group as YAML. For groups the member task configs are rendered under
// `tasks`, in resolution order.
func ExecuteDescribe(reg *registry.Registry, name string) (string, error) {
	if !reg.HasName(name) {
		return "", fmt.Errorf("%w: '%s' is not a registered task or group", errUtils.ErrUnknownReference, name)
	}

	if cfg, ok := reg.Task(name); ok {
		return utils.ConvertToYAML(cfg)
	}

	resolved, err := reg.Resolve(name)
	if err != nil {
		return "", err
	}

	out := map[string]any{
		"group": resolved.Name,
		"tasks": resolved.Tasks,
	}
	if cfg, ok := reg.Group(name); ok {
		if alias := cfg.Alias(); alias != cfg.Group {
			out["group_alias"] = alias
		}
		if len(cfg.AggregateMetricList) > 0 {
			out["aggregate_metric_list"] = cfg.AggregateMetricList
		}
	}
	return utils.ConvertToYAML(out)
}

// ExecuteDescribeTree renders the membership hierarchy of a group (or the
// single node for a task) as an indented tree.
func ExecuteDescribeTree(reg *registry.Registry, name string) (string, error) {
	if _, ok := reg.Task(name); ok {
		return fmt.Sprintf("Task: %s\n", name), nil
	}
	return reg.Tree(name)
}
