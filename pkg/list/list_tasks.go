package list

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/registry"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/utils"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// FilterAndListTasks lists registered task names, optionally filtered by a
// glob pattern (e.g. `mmlu_*`).
func FilterAndListTasks(reg *registry.Registry, pattern string) (string, error) {
	tasks := reg.ListTasks()

	if pattern != "" {
		filtered := []string{}
		for _, name := range tasks {
			matched, err := utils.MatchWildcard(pattern, name)
			if err != nil {
				return "", err
			}
			if matched {
				filtered = append(filtered, name)
			}
		}

		if len(filtered) == 0 {
			return fmt.Sprintf("No tasks found matching '%s'"+"\n", pattern), nil
		}
		sort.Strings(filtered)
		return strings.Join(filtered, "\n") + "\n", nil
	}

	if len(tasks) == 0 {
		return "No tasks registered\n", nil
	}
	return strings.Join(tasks, "\n") + "\n", nil
}

// FilterAndListGroups lists registered group names. When tags is true, tag
// groups are listed instead of regular groups.
func FilterAndListGroups(reg *registry.Registry, pattern string, tags bool) (string, error) {
	var names []string
	if tags {
		names = reg.ListTags()
	} else {
		names = reg.ListGroups()
	}

	if pattern != "" {
		filtered := []string{}
		for _, name := range names {
			matched, err := utils.MatchWildcard(pattern, name)
			if err != nil {
				return "", err
			}
			if matched {
				filtered = append(filtered, name)
			}
		}

		if len(filtered) == 0 {
			return fmt.Sprintf("No groups found matching '%s'"+"\n", pattern), nil
		}
		sort.Strings(filtered)
		names = filtered
	}

	if len(names) == 0 {
		return "No groups registered\n", nil
	}
	return strings.Join(names, "\n") + "\n", nil
}

// ListTasksTable renders tasks with their output type and dataset as an
// aligned table. Used by `tasks list --verbose`.
func ListTasksTable(reg *registry.Registry) string {
	tasks := reg.ListTasks()
	if len(tasks) == 0 {
		return "No tasks registered\n"
	}

	rows := lo.FilterMap(tasks, func(name string, _ int) ([]string, bool) {
		cfg, ok := reg.Task(name)
		if !ok {
			return nil, false
		}
		return []string{name, cfg.OutputType, cfg.DatasetPath}, true
	})

	widths := []int{len("TASK"), len("OUTPUT TYPE"), len("DATASET")}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(formatRow([]string{"TASK", "OUTPUT TYPE", "DATASET"}, widths)))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(formatRow(row, widths))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}
