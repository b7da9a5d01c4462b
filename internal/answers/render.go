package answers

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// KeyConflictError reports a key that is both a value and a parent of other keys.
type KeyConflictError struct {
	Key string
}

func (e *KeyConflictError) Error() string {
	return fmt.Sprintf("key %q holds a value and also has nested keys", e.Key)
}

// FormatForPath guesses the format of a file from its extension.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Extension returns the file extension for a format, with the dot.
func Extension(format string) string {
	if format == FormatTOML {
		return ".toml"
	}
	return ".yaml"
}

// Tree nests the dotted keys into maps.
func (s *Store) Tree() (map[string]any, error) {
	root := make(map[string]any)
	for _, key := range s.Keys() {
		v, _ := s.Get(key)
		parts := strings.Split(key, ".")
		node := root
		for i, part := range parts[:len(parts)-1] {
			next, ok := node[part]
			if !ok {
				child := make(map[string]any)
				node[part] = child
				node = child
				continue
			}
			child, ok := next.(map[string]any)
			if !ok {
				return nil, &KeyConflictError{Key: strings.Join(parts[:i+1], ".")}
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if _, ok := node[leaf].(map[string]any); ok {
			return nil, &KeyConflictError{Key: key}
		}
		node[leaf] = v
	}
	return root, nil
}

// Marshal renders the store. YAML output keeps insertion order; TOML output
// is sorted by key, as go-toml emits maps.
func (s *Store) Marshal(format string) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		return s.marshalYAML()
	case FormatTOML:
		tree, err := s.Tree()
		if err != nil {
			return nil, err
		}
		return toml.Marshal(tree)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func (s *Store) marshalYAML() ([]byte, error) {
	if _, err := s.Tree(); err != nil {
		return nil, err
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range s.Keys() {
		v, _ := s.Get(key)
		node := root
		parts := strings.Split(key, ".")
		for _, part := range parts[:len(parts)-1] {
			node = mappingChild(node, part)
		}
		var value yaml.Node
		if err := value.Encode(v); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: parts[len(parts)-1]},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// mappingChild returns the mapping under key in m, creating it when missing.
func mappingChild(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, child)
	return child
}

// Load reads a YAML or TOML file and flattens it into a store. YAML keeps
// document order; TOML keys are sorted.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatForPath(path))
}

// Parse flattens a YAML or TOML document into a store.
func Parse(data []byte, format string) (*Store, error) {
	s := New()
	switch format {
	case FormatTOML:
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
		flattenMap(s, "", tree)
	default:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
		if len(doc.Content) == 0 {
			return s, nil
		}
		if doc.Content[0].Kind != yaml.MappingNode {
			return nil, fmt.Errorf("parsing yaml: top level must be a mapping")
		}
		if err := flattenNode(s, "", doc.Content[0]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func flattenNode(s *Store, prefix string, n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := join(prefix, n.Content[i].Value)
		value := n.Content[i+1]
		if value.Kind == yaml.MappingNode {
			if err := flattenNode(s, key, value); err != nil {
				return err
			}
			continue
		}
		var v any
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("decoding %s: %w", key, err)
		}
		s.Set(key, v)
	}
	return nil
}

func flattenMap(s *Store, prefix string, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := join(prefix, k)
		if child, ok := m[k].(map[string]any); ok {
			flattenMap(s, key, child)
			continue
		}
		s.Set(key, m[k])
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Diff returns a unified diff from oldText to newText, or "" when they match.
func Diff(oldText, newText, path string) string {
	if oldText == newText {
		return ""
	}
	return udiff.Unified("a/"+path, "b/"+path, oldText, newText)
}
