package entity

import (
	"fmt"
	"strings"
)

// Tag is a key/value pair applied to an inference profile.
type Tag struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// Tags keeps tag order; duplicate keys are allowed and passed through as-is.
type Tags []Tag

// Summary flattens the tags to "k=v; k=v" in their original order.
func (t Tags) Summary() string {
	parts := make([]string, 0, len(t))
	for _, tag := range t {
		parts = append(parts, fmt.Sprintf("%s=%s", tag.Key, tag.Value))
	}
	return strings.Join(parts, "; ")
}
