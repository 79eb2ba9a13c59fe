// Package registry builds an immutable, queryable index of benchmark task and
// group definitions. The registry is constructed once from raw record sources
// and never mutated afterwards, so it may be read concurrently without
// locking.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/schema"
)

// Source is one raw record supplied by an external loader: a parsed key/value
// document plus its origin for error messages.
type Source struct {
	// Origin identifies where the record came from, e.g. a file path.
	Origin string
	// Data is the parsed document.
	Data map[string]any
}

// Resolved is the result of resolving a name: either a single task or a group
// expanded into a flat, ordered, de-duplicated sequence of tasks.
type Resolved struct {
	Name    string
	IsGroup bool
	Tasks   []*schema.TaskConfig
}

// Registry is the in-memory index of task and group definitions.
type Registry struct {
	tasks  map[string]*schema.TaskConfig
	groups map[string]*schema.GroupConfig

	// implicit marks groups synthesized from `group:`/`tag:` fields on task
	// records rather than declared by their own record.
	implicit map[string]bool

	// order holds explicitly declared record names in declaration order.
	order []string

	// taskGroups and taskTags are reverse membership indexes.
	taskGroups map[string][]string
	taskTags   map[string][]string
}

func newRegistry() *Registry {
	return &Registry{
		tasks:      make(map[string]*schema.TaskConfig),
		groups:     make(map[string]*schema.GroupConfig),
		implicit:   make(map[string]bool),
		taskGroups: make(map[string][]string),
		taskTags:   make(map[string][]string),
	}
}

// Task returns the task config registered under name.
func (r *Registry) Task(name string) (*schema.TaskConfig, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Group returns the group config registered under name.
func (r *Registry) Group(name string) (*schema.GroupConfig, bool) {
	g, ok := r.groups[name]
	return g, ok
}

// HasName reports whether name is a registered task or group.
func (r *Registry) HasName(name string) bool {
	_, isTask := r.tasks[name]
	_, isGroup := r.groups[name]
	return isTask || isGroup
}

// ListTasks returns all registered task names, sorted.
func (r *Registry) ListTasks() []string {
	names := lo.Keys(r.tasks)
	sort.Strings(names)
	return names
}

// ListGroups returns all registered group names (tags excluded), sorted.
func (r *Registry) ListGroups() []string {
	names := lo.FilterMap(lo.Entries(r.groups), func(e lo.Entry[string, *schema.GroupConfig], _ int) (string, bool) {
		return e.Key, !e.Value.IsTag()
	})
	sort.Strings(names)
	return names
}

// ListTags returns all registered tag names, sorted.
func (r *Registry) ListTags() []string {
	names := lo.FilterMap(lo.Entries(r.groups), func(e lo.Entry[string, *schema.GroupConfig], _ int) (string, bool) {
		return e.Key, e.Value.IsTag()
	})
	sort.Strings(names)
	return names
}

// GroupsForTask returns the names of all groups that contain the task,
// in the order the memberships were declared.
func (r *Registry) GroupsForTask(task string) []string {
	return r.taskGroups[task]
}

// TagsForTask returns the names of all tags attached to the task.
func (r *Registry) TagsForTask(task string) []string {
	return r.taskTags[task]
}

// Resolve looks up a name. A task name yields a single-entry result; a group
// name is recursively expanded depth-first, preserving declaration order and
// de-duplicating repeated leaf tasks.
func (r *Registry) Resolve(name string) (*Resolved, error) {
	if task, ok := r.tasks[name]; ok {
		return &Resolved{Name: name, Tasks: []*schema.TaskConfig{task}}, nil
	}

	if _, ok := r.groups[name]; ok {
		seen := make(map[string]bool)
		tasks, err := r.expand(name, nil, seen)
		if err != nil {
			return nil, err
		}
		return &Resolved{Name: name, IsGroup: true, Tasks: tasks}, nil
	}

	return nil, fmt.Errorf("%w: '%s' is not a registered task or group", errUtils.ErrUnknownReference, name)
}

// expand flattens a group into its leaf tasks. path holds the group names on
// the current expansion path for cycle detection; seen de-duplicates leaves.
func (r *Registry) expand(name string, path []string, seen map[string]bool) ([]*schema.TaskConfig, error) {
	for _, onPath := range path {
		if onPath == name {
			cycle := append(append([]string{}, path...), name)
			return nil, fmt.Errorf("%w: %s", errUtils.ErrCyclicGroup, strings.Join(cycle, " -> "))
		}
	}

	group := r.groups[name]
	path = append(path, name)

	var tasks []*schema.TaskConfig
	for _, member := range group.Task {
		switch {
		case r.tasks[member] != nil:
			if !seen[member] {
				seen[member] = true
				tasks = append(tasks, r.tasks[member])
			}
		case r.groups[member] != nil:
			sub, err := r.expand(member, path, seen)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, sub...)
		default:
			return nil, fmt.Errorf("%w: group '%s' references '%s'", errUtils.ErrUnknownReference, name, member)
		}
	}

	return tasks, nil
}

// Tree renders the membership hierarchy of a group as indented text:
// one line per node, groups prefixed with "Group:" and leaves with "Task:".
func (r *Registry) Tree(name string) (string, error) {
	if _, ok := r.groups[name]; !ok {
		return "", fmt.Errorf("%w: '%s' is not a registered group", errUtils.ErrUnknownReference, name)
	}

	var sb strings.Builder
	if err := r.writeTree(&sb, name, nil, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *Registry) writeTree(sb *strings.Builder, name string, path []string, depth int) error {
	for _, onPath := range path {
		if onPath == name {
			cycle := append(append([]string{}, path...), name)
			return fmt.Errorf("%w: %s", errUtils.ErrCyclicGroup, strings.Join(cycle, " -> "))
		}
	}

	group := r.groups[name]
	indent := strings.Repeat("  ", depth)
	label := "members"
	if len(group.Task) == 1 {
		label = "member"
	}
	fmt.Fprintf(sb, "%sGroup: %s (%d %s)\n", indent, group.Alias(), len(group.Task), label)

	path = append(path, name)
	for _, member := range group.Task {
		switch {
		case r.tasks[member] != nil:
			fmt.Fprintf(sb, "%s  Task: %s\n", indent, member)
		case r.groups[member] != nil:
			if err := r.writeTree(sb, member, path, depth+1); err != nil {
				return err
			}
		default:
			fmt.Fprintf(sb, "%s  Task: %s (unregistered)\n", indent, member)
		}
	}

	return nil
}
