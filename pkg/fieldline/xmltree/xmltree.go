// Package xmltree provides the read-mostly document tree the lineage
// extractors operate on: parsing, predicate-based node selection, attribute
// access, and serialization back to XML.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode"
)

// ErrMalformed indicates the input could not be parsed into a document tree.
var ErrMalformed = errors.New("malformed document")

// Attr is a single element attribute. Order within a node follows the
// document.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the document tree.
type Node struct {
	Tag      string
	attrs    []Attr
	children []*Node
	parent   *Node
	text     string
}

// Document is a parsed XML document.
type Document struct {
	root *Node
}

// Parse builds a document tree from XML input.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var stack []*Node
	var root *Node
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("%w: element %s after document end", ErrMalformed, t.Name.Local)
			}
			node := &Node{
				Tag:   t.Name.Local,
				attrs: convertAttrs(t.Attr),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
				node.parent = parent
			} else {
				root = node
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 && root != nil {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(string(t)) {
					return nil, fmt.Errorf("%w: character data outside root element", ErrMalformed)
				}
				continue
			}
			stack[len(stack)-1].text += string(t)
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}

	return &Document{root: root}, nil
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func convertAttrs(xmlAttrs []xml.Attr) []Attr {
	attrs := make([]Attr, 0, len(xmlAttrs))
	for _, a := range xmlAttrs {
		name := a.Name.Local
		if a.Name.Space != "" && a.Name.Space != "xmlns" {
			name = a.Name.Space + ":" + a.Name.Local
		}
		attrs = append(attrs, Attr{Name: name, Value: a.Value})
	}
	return attrs
}

// Root returns the document element.
func (d *Document) Root() *Node {
	return d.root
}

// Attr returns the attribute value and whether the attribute is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the attribute value, or empty string when absent.
func (n *Node) AttrValue(name string) string {
	v, _ := n.Attr(name)
	return v
}

// SetAttr sets an attribute, replacing an existing value or appending a new
// attribute. Mutation belongs to the cosmetic-editing path; extraction never
// calls it.
func (n *Node) SetAttr(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// RemoveAttr removes an attribute if present. Reports whether it was removed.
func (n *Node) RemoveAttr(name string) bool {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Attrs returns a copy of the node's attributes in document order.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// Children returns the child elements with the given tag, in document order.
// An empty tag matches all children.
func (n *Node) Children(tag string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if tag == "" || c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Parent returns the parent element, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Text returns the direct character data of the node.
func (n *Node) Text() string {
	return n.text
}

// AppendChild attaches a new child element and returns it.
func (n *Node) AppendChild(tag string) *Node {
	child := &Node{Tag: tag, parent: n}
	n.children = append(n.children, child)
	return child
}
