package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// PrintYAML writes data as YAML. Values are routed through their JSON form
// first so keys match the json tags of the admin API types and custom
// marshalers such as the realm passthrough apply.
func PrintYAML(w io.Writer, data any) error {
	node, err := toYAMLNode(data)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(node)
}

func toYAMLNode(data any) (*yaml.Node, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	// JSON is valid YAML; decoding into a node keeps key order.
	var node yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&node); err != nil {
		return nil, fmt.Errorf("failed to convert output to YAML: %w", err)
	}
	clearStyle(&node)
	return &node, nil
}

// clearStyle drops the flow style inherited from JSON so the output uses
// block mappings and sequences.
func clearStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		clearStyle(c)
	}
}
