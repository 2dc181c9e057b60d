// Package xmltree provides a generic element tree over encoding/xml with the
// traversal helpers the questionnaire formats need: attribute lookup, first
// matching child, and recursive descendant search.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Node is one element of the tree. Children preserve document order.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// Parse decodes a whole document and returns its root element.
func Parse(raw []byte) (*Node, error) {
	var root Node
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("xmltree: decode: %w", err)
	}
	return &root, nil
}

// Name returns the element's local name.
func (n *Node) Name() string {
	return n.XMLName.Local
}

// Attr returns the named attribute value and whether it was present.
// Lookup is by local name.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child with the given local name, or nil.
func (n *Node) Child(name string) *Node {
	for i := range n.Children {
		if n.Children[i].Name() == name {
			return &n.Children[i]
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given local name, in
// document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for i := range n.Children {
		if n.Children[i].Name() == name {
			out = append(out, &n.Children[i])
		}
	}
	return out
}

// Descendants returns every descendant element (the node itself included)
// with the given local name, in document order.
func (n *Node) Descendants(name string) []*Node {
	var out []*Node
	n.walk(func(node *Node) {
		if node.Name() == name {
			out = append(out, node)
		}
	})
	return out
}

func (n *Node) walk(visit func(*Node)) {
	visit(n)
	for i := range n.Children {
		n.Children[i].walk(visit)
	}
}
