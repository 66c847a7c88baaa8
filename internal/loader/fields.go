package loader

import (
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// fields reads named values out of a mapping node. The first error is
// kept and every later read becomes a no-op, so callers check m.err once.
type fields struct {
	owner  *yaml.Node
	values map[string]*yaml.Node
	err    error
}

// readMapping indexes n, rejecting duplicate keys and keys not in allowed.
func readMapping(n *yaml.Node, allowed ...string) (*fields, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "expected a mapping with keys %s", strings.Join(allowed, ", "))
	}
	m := &fields{owner: n, values: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if !slices.Contains(allowed, key.Value) {
			return nil, errorAt(key, "unknown field %q, want one of %s", key.Value, strings.Join(allowed, ", "))
		}
		if _, dup := m.values[key.Value]; dup {
			return nil, errorAt(key, "duplicate field %q", key.Value)
		}
		m.values[key.Value] = val
	}
	return m, nil
}

// optional returns the value of key, or nil when absent.
func (m *fields) optional(key string) *yaml.Node {
	return m.values[key]
}

// node returns the value of a required key.
func (m *fields) node(key string) *yaml.Node {
	if m.err != nil {
		return nil
	}
	n, ok := m.values[key]
	if !ok {
		m.err = errorAt(m.owner, "missing field %q", key)
		return nil
	}
	return n
}

func (m *fields) str(key string) string {
	n := m.node(key)
	if n == nil {
		return ""
	}
	return m.scalarString(n)
}

func (m *fields) int(key string) int {
	n := m.node(key)
	if n == nil {
		return 0
	}
	var v int
	if n.Kind != yaml.ScalarNode || n.Decode(&v) != nil {
		m.err = errorAt(n, "field %q must be an integer", key)
	}
	return v
}

func (m *fields) scalarString(n *yaml.Node) string {
	if n.Kind != yaml.ScalarNode {
		m.err = errorAt(n, "expected a scalar value")
		return ""
	}
	return n.Value
}
