package catalog

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// StringList is an ordered, possibly duplicated list of strings. It decodes
// from a list, a single scalar (older single-service records) or null, and
// always yields a non-nil value.
type StringList []string

// Contains reports whether s is present using exact string equality.
func (l StringList) Contains(s string) bool {
	for i := range l {
		if l[i] == s {
			return true
		}
	}
	return false
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = StringList{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("string list: %w", err)
		}
		*l = fromScalar(s)
		return nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("string list: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	*l = values
	return nil
}

// MarshalJSON implements json.Marshaler. A nil list encodes as [].
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = StringList{}
			return nil
		}
		*l = fromScalar(value.Value)
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := value.Decode(&values); err != nil {
			return fmt.Errorf("string list: %w", err)
		}
		if values == nil {
			values = []string{}
		}
		*l = values
		return nil
	default:
		return fmt.Errorf("string list: line %d: expected list or string", value.Line)
	}
}

func fromScalar(s string) StringList {
	if s == "" {
		return StringList{}
	}
	return StringList{s}
}
