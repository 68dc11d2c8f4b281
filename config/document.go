package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/radflow/params"
	"github.com/sarchlab/radflow/validation"
)

// Document is one parsed configuration file. The node tree is kept so that
// sections are visited in document order and diagnostics carry positions.
type Document struct {
	Path string

	// Design is the design the document belongs to. Instances declared in
	// the document default their design_name to it.
	Design string

	root *yaml.Node
}

// LoadDocument reads and parses a configuration file.
func LoadDocument(path, design string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, validation.Errorf(validation.Design, design,
			"cannot read configuration: %v", err)
	}
	return ParseDocument(path, design, data)
}

// ParseDocument parses configuration data. path is only used in
// diagnostics.
func ParseDocument(path, design string, data []byte) (*Document, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	d := &Document{Path: path, Design: design}
	if n.Kind == 0 || len(n.Content) == 0 {
		return d, nil
	}

	root := n.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, validation.Errorf(validation.InvalidValue, "",
			"a configuration must be a mapping of sections").At(d.pos(root))
	}
	d.root = root

	return d, nil
}

// InstanceCount counts the instance-declaration sections without routing
// anything.
func (d *Document) InstanceCount() int {
	count := 0
	d.eachPair(d.root, func(k, _ *yaml.Node) {
		sec, err := params.ParseSection(k.Value)
		if err == nil && sec.Scope == params.InstanceScope {
			count++
		}
	})
	return count
}

func (d *Document) pos(n *yaml.Node) validation.Position {
	return validation.Position{File: d.Path, Line: n.Line, Column: n.Column}
}

func (d *Document) eachPair(n *yaml.Node, fn func(k, v *yaml.Node)) {
	if n == nil {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i], resolveAlias(n.Content[i+1]))
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// decodeValue turns a scalar or a sequence of scalars into the values the
// registry validates: int, float64, string, bool, nil or []any of those.
func decodeValue(n *yaml.Node) (any, error) {
	n = resolveAlias(n)

	switch n.Kind {
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("list elements must be plain values")
			}
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expects a value or a list, got a mapping")
	}
}
