package registry

import (
	u "github.com/baberabb/lm-evaluation-harness-sub001/pkg/utils"
)

// Records serializes the registry back into raw record sources, in
// declaration order. Implicit groups synthesized from task membership fields
// are omitted, since reloading re-derives them: loading the returned sources
// yields a registry identical to this one.
func (r *Registry) Records() ([]Source, error) {
	records := make([]Source, 0, len(r.order))

	for _, name := range r.order {
		var value any
		if task, ok := r.tasks[name]; ok {
			value = task
		} else {
			value = r.groups[name]
		}

		data, err := toRecordMap(value)
		if err != nil {
			return nil, err
		}
		records = append(records, Source{Origin: name, Data: data})
	}

	return records, nil
}

// toRecordMap converts a typed config back into the raw key/value form a
// loader would supply, by round-tripping through YAML.
func toRecordMap(value any) (map[string]any, error) {
	text, err := u.ConvertToYAML(value)
	if err != nil {
		return nil, err
	}
	return u.UnmarshalYAML[map[string]any](text)
}
