package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
	m "github.com/baberabb/lm-evaluation-harness-sub001/pkg/merge"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/schema"
)

// DefaultMaxIncludeDepth bounds include chains so that include cycles fail
// instead of recursing forever.
const DefaultMaxIncludeDepth = 10

// Record keys used for classification.
const (
	keyTask    = "task"
	keyGroup   = "group"
	keyInclude = "include"
)

// taskFieldKeys are the fields that mark a record as a task definition even
// when its `task` value is ambiguous (a group may list a single member task).
var taskFieldKeys = []string{
	"output_type",
	"dataset_path",
	"dataset_name",
	"training_split",
	"validation_split",
	"test_split",
	"use_prompt",
	"metric_list",
}

// loader carries the state of a single Load pass.
type loader struct {
	harnessConfig *schema.HarnessConfiguration
	reg           *Registry

	// byName indexes docs by record identifier, byOrigin by source origin
	// (full and base name). Both serve `include:` lookups.
	byName   map[string]map[string]any
	byOrigin map[string]map[string]any

	maxDepth int
	errs     []error

	// collided de-duplicates task/group name collision reports.
	collided map[string]bool
}

// Load builds a Registry from an ordered sequence of raw record sources.
//
// Each record may carry an `include` reference naming a template whose fields
// are merged in as defaults, with the including record's own fields taking
// precedence. Records are classified as tasks or groups, decoded, validated,
// and inserted; a duplicate name is an error. A malformed record does not
// abort the rest of the batch: all errors are collected and reported
// together.
func Load(harnessConfig *schema.HarnessConfiguration, sources []Source) (*Registry, error) {
	if harnessConfig == nil {
		harnessConfig = &schema.HarnessConfiguration{}
	}

	maxDepth := harnessConfig.Settings.MaxIncludeDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxIncludeDepth
	}

	ld := &loader{
		harnessConfig: harnessConfig,
		reg:           newRegistry(),
		byName:        make(map[string]map[string]any),
		byOrigin:      make(map[string]map[string]any),
		maxDepth:      maxDepth,
		collided:      make(map[string]bool),
	}

	ld.index(sources)

	for _, src := range sources {
		ld.loadRecord(src)
	}

	ld.wireMemberships()

	if len(ld.errs) > 0 {
		return nil, errors.Join(ld.errs...)
	}

	return ld.reg, nil
}

// index registers every doc for include lookup before any record is loaded,
// so templates may be declared after the records that include them.
func (ld *loader) index(sources []Source) {
	for _, src := range sources {
		if name := recordIdentifier(src.Data); name != "" {
			if _, exists := ld.byName[name]; !exists {
				ld.byName[name] = src.Data
			}
		}
		if src.Origin != "" {
			ld.byOrigin[src.Origin] = src.Data
			base := strings.TrimSuffix(filepath.Base(src.Origin), filepath.Ext(src.Origin))
			if _, exists := ld.byOrigin[base]; !exists {
				ld.byOrigin[base] = src.Data
			}
		}
	}
}

// recordIdentifier extracts the unique name of a record: the `task` value for
// task definitions, the `group` value for group definitions. Template-only
// docs (neither key) have no identifier.
func recordIdentifier(doc map[string]any) string {
	if isTaskRecord(doc) {
		name, _ := doc[keyTask].(string)
		return name
	}
	if name, ok := doc[keyGroup].(string); ok {
		return name
	}
	if name, ok := doc[keyTask].(string); ok {
		return name
	}
	return ""
}

// isTaskRecord classifies a doc as a task definition: it names a task and
// either carries task-defining fields or no group key at all. A doc with a
// `group` key and none of the task fields is a group definition even when its
// member list is a single bare string.
func isTaskRecord(doc map[string]any) bool {
	if _, ok := doc[keyTask].(string); !ok {
		return false
	}
	if _, hasGroup := doc[keyGroup]; !hasGroup {
		return true
	}
	for _, key := range taskFieldKeys {
		if _, ok := doc[key]; ok {
			return true
		}
	}
	return false
}

func (ld *loader) loadRecord(src Source) {
	doc := src.Data
	if len(doc) == 0 {
		return
	}

	name := recordIdentifier(doc)
	if name == "" {
		// Template-only doc: usable as an include target, not a record.
		if _, hasInclude := doc[keyInclude]; !hasInclude && !hasAnyKey(doc, taskFieldKeys) {
			ld.errs = append(ld.errs, fmt.Errorf("%w: record from %s has no task or group name", errUtils.ErrValidation, origin(src)))
		}
		return
	}

	merged, err := ld.resolveInclude(doc, 0)
	if err != nil {
		ld.errs = append(ld.errs, fmt.Errorf("%w (from %s)", err, origin(src)))
		return
	}
	delete(merged, keyInclude)

	if ld.reg.HasName(name) {
		ld.errs = append(ld.errs, fmt.Errorf("%w: '%s' (from %s)", errUtils.ErrDuplicateIdentifier, name, origin(src)))
		return
	}

	if isTaskRecord(merged) {
		ld.insertTask(name, merged, src)
	} else {
		ld.insertGroup(name, merged, src)
	}
}

func (ld *loader) insertTask(name string, merged map[string]any, src Source) {
	task, err := decodeTask(merged)
	if err != nil {
		ld.errs = append(ld.errs, fmt.Errorf("%w: task '%s': %s (from %s)", errUtils.ErrValidation, name, err, origin(src)))
		return
	}

	if errs := ValidateTask(task); len(errs) > 0 {
		for _, vErr := range errs {
			ld.errs = append(ld.errs, fmt.Errorf("%w (from %s)", vErr, origin(src)))
		}
		return
	}

	ld.reg.tasks[name] = task
	ld.reg.order = append(ld.reg.order, name)
}

func (ld *loader) insertGroup(name string, merged map[string]any, src Source) {
	group, err := decodeGroup(merged)
	if err != nil {
		ld.errs = append(ld.errs, fmt.Errorf("%w: group '%s': %s (from %s)", errUtils.ErrValidation, name, err, origin(src)))
		return
	}

	if errs := ValidateGroup(group); len(errs) > 0 {
		for _, vErr := range errs {
			ld.errs = append(ld.errs, fmt.Errorf("%w (from %s)", vErr, origin(src)))
		}
		return
	}

	ld.reg.groups[name] = group
	ld.reg.order = append(ld.reg.order, name)
}

// resolveInclude merges the referenced template's fields in as defaults, with
// the including doc's own fields winning. Templates may themselves include
// other templates, bounded by the configured depth.
func (ld *loader) resolveInclude(doc map[string]any, depth int) (map[string]any, error) {
	includeRef, ok := doc[keyInclude].(string)
	if !ok || includeRef == "" {
		return m.MergeWithOptions([]map[string]any{doc}, false, false)
	}

	if depth >= ld.maxDepth {
		return nil, fmt.Errorf("%w: %d levels via '%s'", errUtils.ErrIncludeDepthExceeded, depth, includeRef)
	}

	template := ld.lookupTemplate(includeRef)
	if template == nil {
		return nil, fmt.Errorf("%w: '%s'", errUtils.ErrUnresolvedInclude, includeRef)
	}

	resolvedTemplate, err := ld.resolveInclude(template, depth+1)
	if err != nil {
		return nil, err
	}
	delete(resolvedTemplate, keyTask)
	delete(resolvedTemplate, keyGroup)

	return m.Merge(ld.harnessConfig, []map[string]any{resolvedTemplate, doc})
}

func (ld *loader) lookupTemplate(ref string) map[string]any {
	if doc, ok := ld.byName[ref]; ok {
		return doc
	}
	if doc, ok := ld.byOrigin[ref]; ok {
		return doc
	}
	base := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	if doc, ok := ld.byOrigin[base]; ok {
		return doc
	}
	return nil
}

// wireMemberships records reverse task -> group/tag links and synthesizes
// implicit groups for memberships declared on task records. Member lists are
// de-duplicated so repeated loads converge.
func (ld *loader) wireMemberships() {
	for _, name := range ld.reg.order {
		task, ok := ld.reg.tasks[name]
		if !ok {
			continue
		}

		for _, groupName := range task.Group {
			ld.addMember(groupName, name, false)
			if !ld.collided[groupName] {
				ld.linkTaskToGroup(name, groupName, false)
			}
		}
		for _, tagName := range task.Tag {
			ld.addMember(tagName, name, true)
			if !ld.collided[tagName] {
				ld.linkTaskToGroup(name, tagName, true)
			}
		}
	}

	// Explicitly declared group members also get reverse links.
	for _, name := range ld.reg.order {
		group, ok := ld.reg.groups[name]
		if !ok {
			continue
		}
		for _, member := range group.Task {
			if _, isTask := ld.reg.tasks[member]; isTask {
				ld.linkTaskToGroup(member, name, group.IsTag())
			}
		}
	}
}

func (ld *loader) addMember(groupName, taskName string, asTag bool) {
	// A synthesized group may not shadow a registered task.
	if _, isTask := ld.reg.tasks[groupName]; isTask {
		if !ld.collided[groupName] {
			ld.collided[groupName] = true
			ld.errs = append(ld.errs, fmt.Errorf("%w: '%s' is declared as both a task and a group", errUtils.ErrDuplicateIdentifier, groupName))
		}
		return
	}

	group, exists := ld.reg.groups[groupName]
	if !exists {
		group = &schema.GroupConfig{Group: groupName}
		if asTag {
			group.Metadata = map[string]any{"type": "tag"}
		}
		ld.reg.groups[groupName] = group
		ld.reg.implicit[groupName] = true
	}

	for _, member := range group.Task {
		if member == taskName {
			return
		}
	}
	group.Task = append(group.Task, taskName)
}

func (ld *loader) linkTaskToGroup(taskName, groupName string, isTag bool) {
	index := ld.reg.taskGroups
	if isTag {
		index = ld.reg.taskTags
	}
	for _, existing := range index[taskName] {
		if existing == groupName {
			return
		}
	}
	index[taskName] = append(index[taskName], groupName)
}

func hasAnyKey(doc map[string]any, keys []string) bool {
	for _, key := range keys {
		if _, ok := doc[key]; ok {
			return true
		}
	}
	return false
}

func origin(src Source) string {
	if src.Origin == "" {
		return "<inline>"
	}
	return src.Origin
}

func decodeTask(doc map[string]any) (*schema.TaskConfig, error) {
	var task schema.TaskConfig
	if err := decode(doc, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func decodeGroup(doc map[string]any) (*schema.GroupConfig, error) {
	var group schema.GroupConfig
	if err := decode(doc, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func decode(doc map[string]any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       schema.StringOrListDecodeHook(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(doc)
}
