package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed mapping that remembers insertion order.
// Schema documents rely on declaration order (attribute order, the first
// permissible value of an enum), so every mapping in the model uses it.
//
// The zero value is not usable; create maps with NewOrderedMap. Read-only
// methods are safe on a nil map.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap creates an empty ordered map
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Len returns the number of entries
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// IsZero reports whether the map is empty; yaml.v3 uses it for omitempty
func (m *OrderedMap[V]) IsZero() bool { return m.Len() == 0 }

// Get returns the value stored under key
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. A new key goes to the end, an existing key
// keeps its position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key, preserving the order of the remaining entries
func (m *OrderedMap[V]) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in order
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// All iterates over entries in order
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a copy of the map, copying each value with fn
// (or by assignment when fn is nil).
func (m *OrderedMap[V]) Clone(fn func(V) V) *OrderedMap[V] {
	out := NewOrderedMap[V]()
	for k, v := range m.All() {
		if fn != nil {
			v = fn(v)
		}
		out.Set(k, v)
	}
	return out
}

// UnmarshalYAML decodes a YAML mapping, keeping the document order
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, nodeKind(node))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var value V
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		m.Set(keyNode.Value, value)
	}
	return nil
}

// MarshalYAML encodes the map as a YAML mapping in insertion order
func (m *OrderedMap[V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range m.All() {
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(v); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			valueNode)
	}
	return node, nil
}

// MarshalJSON encodes the map as a JSON object in insertion order
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for k, v := range m.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document order
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected a string key, got %v", tok)
		}
		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		m.Set(key, value)
	}
	_, err = dec.Token()
	return err
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
