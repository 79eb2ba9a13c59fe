package schema

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for StringOrList decoding.
var (
	// ErrStringOrListInvalidFormat is returned when a value is neither a string nor a list of strings.
	ErrStringOrListInvalidFormat = errors.New("invalid format: expected string or list of strings")
)

// StringOrList is a list of names that supports flexible YAML unmarshaling.
// Task definitions allow both forms:
//
// Single name:
//
//	group: agieval
//
// List of names:
//
//	group:
//	  - agieval
//	  - reasoning
type StringOrList []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrList.
// It handles both a scalar node (single name) and a sequence node (list of names).
func (s *StringOrList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		// Null scalars ("group: ~") decode to an empty list.
		if value.Tag == "!!null" {
			*s = nil
			return nil
		}
		*s = StringOrList{value.Value}
		return nil
	case yaml.SequenceNode:
		names := make([]string, 0, len(value.Content))
		for i, node := range value.Content {
			if node.Kind != yaml.ScalarNode {
				return fmt.Errorf("%w: element %d is not a string", ErrStringOrListInvalidFormat, i)
			}
			names = append(names, node.Value)
		}
		*s = names
		return nil
	default:
		return fmt.Errorf("%w: got node kind %v", ErrStringOrListInvalidFormat, value.Kind)
	}
}

// MarshalYAML renders a single-element list as a bare string to keep
// serialized records in their most common declared form.
func (s StringOrList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// StringOrListDecodeHook is a mapstructure decode hook converting both string
// and []any values into a StringOrList. Use when decoding raw record maps.
func StringOrListDecodeHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(StringOrList{}) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return StringOrList{v}, nil
		case []any:
			names := make(StringOrList, 0, len(v))
			for i, item := range v {
				str, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: element %d is %T", ErrStringOrListInvalidFormat, i, item)
				}
				names = append(names, str)
			}
			return names, nil
		case []string:
			return StringOrList(v), nil
		case nil:
			return StringOrList(nil), nil
		default:
			return data, nil
		}
	}
}
