package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SelectorMap is a mapping from field names to CSS selectors that keeps
// the order in which the keys appear in the yaml document. The order
// determines the column order of the written output.
type SelectorMap struct {
	names     []string
	selectors map[string]string
}

// UnmarshalYAML implements yaml.Unmarshaler, decoding a yaml mapping
// node by node so the key order is not lost.
func (m *SelectorMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: selector mapping expected", value.Line)
	}
	m.names = nil
	m.selectors = map[string]string{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		var selector string
		if err := value.Content[i+1].Decode(&selector); err != nil {
			return fmt.Errorf("selector for %q: %w", name, err)
		}
		m.Set(name, selector)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler, preserving key order.
func (m SelectorMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range m.names {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: m.selectors[name]},
		)
	}
	return node, nil
}

// Set adds or replaces a selector, keeping first-seen key order.
func (m *SelectorMap) Set(name, selector string) {
	if m.selectors == nil {
		m.selectors = map[string]string{}
	}
	if _, ok := m.selectors[name]; !ok {
		m.names = append(m.names, name)
	}
	m.selectors[name] = selector
}

// Get returns the selector registered under the given name.
func (m *SelectorMap) Get(name string) string {
	return m.selectors[name]
}

// Names returns the field names in configuration order.
func (m *SelectorMap) Names() []string {
	return m.names
}

func (m *SelectorMap) Len() int {
	return len(m.names)
}
