package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKeyPath is returned when a key path contains no segments.
var ErrEmptyKeyPath = errors.New("empty key path")

// ParseKeyPath splits a dotted key path into its segments.
func ParseKeyPath(path string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyKeyPath
	}
	return strings.Split(path, "."), nil
}

// SetConfigValue validates and writes a single configuration value into the
// YAML config file at configPath, creating the file (and parent directories)
// if needed. Existing content and comments are preserved by editing the YAML
// node tree in place.
func SetConfigValue(configPath, key, value string) error {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return err
	}

	keyPath, err := ParseKeyPath(key)
	if err != nil {
		return err
	}

	var root yaml.Node
	if data, err := os.ReadFile(configPath); err == nil && len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, &root); err != nil {
			return fmt.Errorf("parsing existing config %s: %w", configPath, err)
		}
	}

	if err := SetNestedValue(&root, keyPath, parsed.Parsed); err != nil {
		return err
	}

	out, err := yaml.Marshal(&root)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", configPath, err)
	}
	return nil
}

// SetNestedValue sets the value at keyPath inside the YAML node tree rooted
// at root, creating intermediate mappings as needed. An uninitialized root is
// turned into a document with an empty top-level mapping.
func SetNestedValue(root *yaml.Node, keyPath []string, value interface{}) error {
	if len(keyPath) == 0 {
		return ErrEmptyKeyPath
	}

	if root.Kind == 0 {
		root.Kind = yaml.DocumentNode
		root.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			node.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
		}
		node = node.Content[0]
	}

	for i, key := range keyPath {
		last := i == len(keyPath)-1

		valNode := mappingValue(node, key)
		if valNode == nil {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
			valNode = &yaml.Node{}
			if last {
				setScalar(valNode, value)
			} else {
				valNode.Kind = yaml.MappingNode
				valNode.Tag = "!!map"
			}
			node.Content = append(node.Content, keyNode, valNode)
		} else if last {
			setScalar(valNode, value)
		} else if valNode.Kind != yaml.MappingNode {
			// Replace a scalar with a mapping so the deeper key can be set.
			valNode.Kind = yaml.MappingNode
			valNode.Tag = "!!map"
			valNode.Value = ""
			valNode.Content = nil
		}
		node = valNode
	}
	return nil
}

// GetNestedValue returns the node at keyPath inside the YAML tree rooted at
// root, or nil if any segment is missing.
func GetNestedValue(root *yaml.Node, keyPath []string) *yaml.Node {
	if root == nil || len(keyPath) == 0 {
		return nil
	}
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	for _, key := range keyPath {
		if node.Kind != yaml.MappingNode {
			return nil
		}
		node = mappingValue(node, key)
		if node == nil {
			return nil
		}
	}
	return node
}

// mappingValue returns the value node for key inside a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for j := 0; j+1 < len(node.Content); j += 2 {
		if node.Content[j].Value == key {
			return node.Content[j+1]
		}
	}
	return nil
}

// setScalar turns node into a scalar holding value.
func setScalar(node *yaml.Node, value interface{}) {
	node.Kind = yaml.ScalarNode
	node.Content = nil
	switch v := value.(type) {
	case bool:
		node.Tag = "!!bool"
		node.Value = strconv.FormatBool(v)
	case int:
		node.Tag = "!!int"
		node.Value = strconv.Itoa(v)
	case float64:
		node.Tag = "!!float"
		node.Value = strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		node.Tag = "!!str"
		node.Value = v
	default:
		node.Tag = "!!str"
		node.Value = fmt.Sprintf("%v", v)
	}
}
