package xmltree

// Predicate decides whether a node matches a selection.
type Predicate func(*Node) bool

// ByTag matches nodes with the given tag.
func ByTag(tag string) Predicate {
	return func(n *Node) bool {
		return n.Tag == tag
	}
}

// HasAttr matches nodes carrying the named attribute with a non-empty value.
func HasAttr(name string) Predicate {
	return func(n *Node) bool {
		v, ok := n.Attr(name)
		return ok && v != ""
	}
}

// AttrEquals matches nodes whose named attribute equals value.
func AttrEquals(name, value string) Predicate {
	return func(n *Node) bool {
		v, ok := n.Attr(name)
		return ok && v == value
	}
}

// All combines predicates; a node matches when every predicate matches.
func All(preds ...Predicate) Predicate {
	return func(n *Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Select returns all nodes in the subtree rooted at n (inclusive) matching
// the predicate, in document order.
func (n *Node) Select(p Predicate) []*Node {
	var out []*Node
	n.walk(func(node *Node) {
		if p(node) {
			out = append(out, node)
		}
	})
	return out
}

// Select returns all matching nodes of the document, in document order.
func (d *Document) Select(p Predicate) []*Node {
	if d.root == nil {
		return nil
	}
	return d.root.Select(p)
}

func (n *Node) walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		c.walk(visit)
	}
}
