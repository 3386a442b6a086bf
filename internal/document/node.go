// Package document provides the generic tree used to load and save simulation
// configurations. A Node carries a name, ordered attributes, ordered children
// and optional character data, so any structured format can be mapped onto it.
package document

import (
	"strconv"
)

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a structured document.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// New returns an empty element with the given name.
func New(name string) *Node {
	return &Node{Name: name}
}

// Attr returns the value of the named attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping its original position when it already
// exists.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// SetIntAttr stores an integer attribute in decimal form.
func (n *Node) SetIntAttr(name string, value int) *Node {
	return n.SetAttr(name, strconv.Itoa(value))
}

// SetFloatAttr stores a float attribute using the shortest exact form.
func (n *Node) SetFloatAttr(name string, value float64) *Node {
	return n.SetAttr(name, strconv.FormatFloat(value, 'g', -1, 64))
}

// Child returns the first nested element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every nested element with the given name in document
// order.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// AddChild appends c and returns it so element construction can be chained.
func (n *Node) AddChild(c *Node) *Node {
	if c == nil {
		return nil
	}
	n.Children = append(n.Children, c)
	return c
}

// Find returns the first element named name in a depth-first walk that
// includes n itself.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Name: n.Name, Text: n.Text}
	if len(n.Attrs) > 0 {
		out.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}
