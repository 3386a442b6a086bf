package document

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAML layout for a node:
//
//	name: RD
//	attrs:
//	  format_version: "6"
//	text: ...
//	children:
//	  - name: rule
//	    ...
//
// Attribute order is preserved through the mapping node.
const (
	yamlKeyName     = "name"
	yamlKeyAttrs    = "attrs"
	yamlKeyText     = "text"
	yamlKeyChildren = "children"
)

// DecodeYAML parses a node tree from its YAML form.
func DecodeYAML(r io.Reader) (*Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("document: decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("document: decode yaml: empty document")
	}
	n, err := fromYAML(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("document: decode yaml: %w", err)
	}
	return n, nil
}

// EncodeYAML writes n and its subtree in YAML form.
func EncodeYAML(w io.Writer, n *Node) error {
	if n == nil {
		return errors.New("document: encode yaml: nil node")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(n)); err != nil {
		return fmt.Errorf("document: encode yaml: %w", err)
	}
	return enc.Close()
}

func fromYAML(y *yaml.Node) (*Node, error) {
	if y.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected mapping for element", y.Line)
	}
	n := &Node{}
	for i := 0; i+1 < len(y.Content); i += 2 {
		key, val := y.Content[i], y.Content[i+1]
		switch key.Value {
		case yamlKeyName:
			n.Name = val.Value
		case yamlKeyText:
			n.Text = val.Value
		case yamlKeyAttrs:
			if val.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: attrs must be a mapping", val.Line)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				n.Attrs = append(n.Attrs, Attr{Name: val.Content[j].Value, Value: val.Content[j+1].Value})
			}
		case yamlKeyChildren:
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: children must be a sequence", val.Line)
			}
			for _, c := range val.Content {
				child, err := fromYAML(c)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, child)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	if n.Name == "" {
		return nil, fmt.Errorf("line %d: element without name", y.Line)
	}
	return n, nil
}

func toYAML(n *Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, scalar(yamlKeyName), scalar(n.Name))
	if len(n.Attrs) > 0 {
		attrs := &yaml.Node{Kind: yaml.MappingNode}
		for _, a := range n.Attrs {
			attrs.Content = append(attrs.Content, scalar(a.Name), quoted(a.Value))
		}
		m.Content = append(m.Content, scalar(yamlKeyAttrs), attrs)
	}
	if n.Text != "" {
		text := quoted(n.Text)
		if containsNewline(n.Text) {
			text.Style = yaml.LiteralStyle
		}
		m.Content = append(m.Content, scalar(yamlKeyText), text)
	}
	if len(n.Children) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range n.Children {
			seq.Content = append(seq.Content, toYAML(c))
		}
		m.Content = append(m.Content, scalar(yamlKeyChildren), seq)
	}
	return m
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func quoted(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle}
}

func containsNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
	}
	return false
}
