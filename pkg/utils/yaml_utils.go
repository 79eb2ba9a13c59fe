package utils

import (
	"gopkg.in/yaml.v3"
)

// ConvertToYAML serializes data to a YAML string.
func ConvertToYAML(data any) (string, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// UnmarshalYAML parses a YAML string into the given type.
func UnmarshalYAML[T any](input string) (T, error) {
	var data T
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return data, err
	}
	return data, nil
}

// UnmarshalYAMLDocuments parses a multi-document YAML string into a slice of
// maps, skipping empty documents.
func UnmarshalYAMLDocuments(input string) ([]map[string]any, error) {
	var docs []map[string]any

	dec := newDocumentDecoder(input)
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if err != nil {
			if isEOF(err) {
				break
			}
			return nil, err
		}
		if len(doc) == 0 {
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
