package snapshot

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode renders the document in the given format. Encoding the same
// document twice yields identical bytes.
func Encode(doc *Document, format string) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		return EncodeJSON(doc)
	case FormatYAML:
		return EncodeYAML(doc)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}

func EncodeJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML renders the JSON form as block YAML, keeping the JSON key order.
func EncodeYAML(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("converting snapshot to yaml: %w", err)
	}
	blockStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot yaml: %w", err)
	}
	return out, nil
}

// blockStyle clears the flow and quoting styles the JSON source left on the
// tree.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
